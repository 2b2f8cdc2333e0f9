package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/config"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
)

func newTestServer(services Services) *Server {
	obs := &observability.Observability{
		Logger:   slog.New(slog.DiscardHandler),
		Registry: prometheus.NewRegistry(),
		Tracer:   noop.NewTracerProvider().Tracer("test"),
	}
	return NewServer(config.HTTPConfig{Addr: ":0"}, obs, services)
}

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(Services{})

	rec := doRequest(t, srv, http.MethodGet, "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "ok" {
		t.Errorf("body = %q, want %q", got, "ok")
	}
}

func TestListCourses(t *testing.T) {
	srv := newTestServer(Services{
		Courses: &FakeCourseService{
			ListCoursesFunc: func(ctx context.Context) ([]coursedb.Course, error) {
				return []coursedb.Course{
					{ID: "pebble-creek", Name: "Pebble Creek", City: "Becker", State: "MN"},
				}, nil
			},
		},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/courses")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var courses []coursedb.Course
	if err := json.NewDecoder(rec.Body).Decode(&courses); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "pebble-creek" {
		t.Errorf("unexpected courses: %+v", courses)
	}
}

func TestGetRound(t *testing.T) {
	roundID := sharedtypes.RoundID("11111111-2222-3333-4444-555555555555")
	stored := &rounddb.Round{
		ID:       roundID,
		CourseID: "pebble-creek",
		Format:   sharedtypes.FormatFull18,
		TeeTime:  time.Date(2026, time.June, 6, 12, 30, 0, 0, time.UTC),
		Status:   rounddb.StatusScheduled,
	}

	tests := []struct {
		name       string
		service    *FakeRoundService
		target     string
		wantStatus int
	}{
		{
			name: "found",
			service: &FakeRoundService{
				GetRoundFunc: func(ctx context.Context, id sharedtypes.RoundID) (*rounddb.Round, error) {
					if id != roundID {
						t.Errorf("round id = %q, want %q", id, roundID)
					}
					return stored, nil
				},
			},
			target:     "/api/rounds/" + string(roundID),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing round is a 404",
			service:    &FakeRoundService{},
			target:     "/api/rounds/nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name: "repository failure is a 500",
			service: &FakeRoundService{
				GetRoundFunc: func(ctx context.Context, id sharedtypes.RoundID) (*rounddb.Round, error) {
					return nil, errors.New("connection reset")
				},
			},
			target:     "/api/rounds/" + string(roundID),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(Services{Rounds: tt.service})

			rec := doRequest(t, srv, http.MethodGet, tt.target)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var round rounddb.Round
			if err := json.NewDecoder(rec.Body).Decode(&round); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if round.ID != roundID || round.Status != rounddb.StatusScheduled {
				t.Errorf("unexpected round: %+v", round)
			}
		})
	}
}

func TestGetStandings(t *testing.T) {
	roundID := sharedtypes.RoundID("round-1")

	t.Run("found", func(t *testing.T) {
		srv := newTestServer(Services{
			Scoring: &FakeScoringService{
				GetStandingsFunc: func(ctx context.Context, id sharedtypes.RoundID) (*scorecard.Results, error) {
					return &scorecard.Results{
						RoundID: id,
						StrokePlay: []scorecard.StrokePlayLine{
							{GolferID: "amy", HolesPlayed: 9, GrossTotal: 40, ToPar: 4},
						},
					}, nil
				},
			},
		})

		rec := doRequest(t, srv, http.MethodGet, "/api/rounds/"+string(roundID)+"/standings")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var results scorecard.Results
		if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if results.RoundID != roundID || len(results.StrokePlay) != 1 {
			t.Errorf("unexpected results: %+v", results)
		}
	})

	t.Run("missing standings is a 404", func(t *testing.T) {
		srv := newTestServer(Services{Scoring: &FakeScoringService{}})

		rec := doRequest(t, srv, http.MethodGet, "/api/rounds/nope/standings")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestGetLeaderboard(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		srv := newTestServer(Services{
			Leaderboard: &FakeLeaderboardService{
				GetLeaderboardFunc: func(ctx context.Context) ([]leaderboarddb.Entry, error) {
					return []leaderboarddb.Entry{
						{GolferID: "amy", Name: "Amy", RoundsPlayed: 3, TotalToPar: -2},
						{GolferID: "ben", Name: "Ben", RoundsPlayed: 3, TotalToPar: 5},
					}, nil
				},
			},
		})

		rec := doRequest(t, srv, http.MethodGet, "/api/leaderboard")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var entries []leaderboarddb.Entry
		if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(entries) != 2 || entries[0].GolferID != "amy" {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})

	t.Run("empty board encodes as an array", func(t *testing.T) {
		srv := newTestServer(Services{Leaderboard: &FakeLeaderboardService{}})

		rec := doRequest(t, srv, http.MethodGet, "/api/leaderboard")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("body = %q, want []", got)
		}
	})
}

func TestGetTrendChart(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	srv := newTestServer(Services{
		Leaderboard: &FakeLeaderboardService{
			RenderTrendChartFunc: func(ctx context.Context, golferID sharedtypes.GolferID) ([]byte, error) {
				if golferID != "amy" {
					t.Errorf("golfer id = %q, want amy", golferID)
				}
				return append(pngMagic, 0x0D, 0x0A, 0x1A, 0x0A), nil
			},
		},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/golfers/amy/trend.png")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if body := rec.Body.Bytes(); len(body) < 4 || string(body[:4]) != string(pngMagic) {
		t.Errorf("body does not start with PNG magic: %v", body)
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusOK)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}

	// A different client has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	other.RemoteAddr = "10.0.0.2:54321"
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, other)
	if third.Code != http.StatusOK {
		t.Fatalf("other client status = %d, want %d", third.Code, http.StatusOK)
	}
}
