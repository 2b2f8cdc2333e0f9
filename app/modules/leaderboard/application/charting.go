package leaderboardservice

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
)

// ChartPalette is the color set trend charts render with.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentDot   drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is a dark green clubhouse look.
var DefaultPalette = ChartPalette{
	Background:  drawing.Color{R: 0x12, G: 0x1a, B: 0x14, A: 0xff},
	PrimaryLine: drawing.Color{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	AccentDot:   drawing.Color{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff},
	TextColor:   drawing.Color{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
}

// GenerateTrendChart produces a PNG line chart of a golfer's to-par results
// over time. Lower is better, so the Y axis is drawn descending.
func GenerateTrendChart(points []leaderboarddb.TrendPoint, palette ChartPalette) ([]byte, error) {
	if len(points) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	xValues := make([]float64, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = float64(i + 1)
		yValues[i] = float64(p.ToPar)
	}

	mainSeries := chart.ContinuousSeries{
		Name:    "To Par",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentDot,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name: "Round",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "To Par",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{
				Descending: true, // under par reads as up
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No finalized rounds yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
