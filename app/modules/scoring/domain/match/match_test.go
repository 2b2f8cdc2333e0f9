package match

import (
	"errors"
	"testing"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

func mustMatch(t *testing.T, format sharedtypes.RoundFormat) *Match {
	t.Helper()
	m, err := New(format)
	if err != nil {
		t.Fatalf("New(%s): %v", format, err)
	}
	return m
}

func record(t *testing.T, m *Match, hole sharedtypes.HoleNumber, r Result) {
	t.Helper()
	if err := m.RecordResult(hole, r); err != nil {
		t.Fatalf("RecordResult(%d, %d): %v", hole, r, err)
	}
}

func TestMatchWinByMargin(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatFull18)

	// A wins holes 1-4, everything else halved.
	for h := sharedtypes.HoleNumber(1); h <= 4; h++ {
		record(t, m, h, SideAWinsHole)
	}
	for h := sharedtypes.HoleNumber(5); h <= 18; h++ {
		record(t, m, h, HoleHalved)
	}

	st := m.Status()
	if !st.Decided {
		t.Fatal("match should be decided")
	}
	if st.Winner != sharedtypes.TeamSideA {
		t.Errorf("winner = %s, want A", st.Winner)
	}
	// 4 up with 3 to play first holds after hole 15: the win triggers at the
	// exact hole where |cumulative| > remaining.
	if st.WinningHole != 15 {
		t.Errorf("winning hole = %d, want 15", st.WinningHole)
	}
	if st.Score != "4&3" {
		t.Errorf("score = %q, want 4&3", st.Score)
	}
}

func TestMatchFreezesAfterWin(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatFront9)

	// B wins 1-5: 5 up with 4 to play, decided at hole 5.
	for h := sharedtypes.HoleNumber(1); h <= 5; h++ {
		record(t, m, h, SideBWinsHole)
	}
	st := m.Status()
	if !st.Decided || st.Winner != sharedtypes.TeamSideB || st.Score != "5&4" {
		t.Fatalf("unexpected status: %+v", st)
	}

	// Results past the winning hole are ignored even if scores exist.
	record(t, m, 6, SideAWinsHole)
	record(t, m, 7, SideAWinsHole)

	after := m.Status()
	if after != st {
		t.Errorf("status changed after frozen match: %+v -> %+v", st, after)
	}
}

func TestMatchCorrectionReopensMatch(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatFront9)

	for h := sharedtypes.HoleNumber(1); h <= 5; h++ {
		record(t, m, h, SideAWinsHole)
	}
	if !m.Status().Decided {
		t.Fatal("expected decided match")
	}

	// Correcting hole 3 to a halve drops A to 4 up with 4 to play: no longer
	// decided, and the replay must not double count the edit.
	record(t, m, 3, HoleHalved)

	st := m.Status()
	if st.Decided {
		t.Fatalf("match should be reopened, got %+v", st)
	}
	if st.Cumulative != 4 {
		t.Errorf("cumulative = %d, want 4", st.Cumulative)
	}
	if !st.Dormie {
		t.Error("4 up with 4 to play should be dormie")
	}
}

func TestMatchLastHoleNormalization(t *testing.T) {
	t.Run("one up at the last becomes 1UP not 1&0", func(t *testing.T) {
		m := mustMatch(t, sharedtypes.FormatFront9)
		record(t, m, 1, SideAWinsHole)
		for h := sharedtypes.HoleNumber(2); h <= 9; h++ {
			record(t, m, h, HoleHalved)
		}
		st := m.Status()
		if !st.Decided || st.Score != "1UP" {
			t.Errorf("status = %+v, want decided 1UP", st)
		}
		if st.WinningHole != 9 {
			t.Errorf("winning hole = %d, want 9", st.WinningHole)
		}
	})

	t.Run("two up at the last becomes 2UP not 2&0", func(t *testing.T) {
		m := mustMatch(t, sharedtypes.FormatFront9)
		record(t, m, 1, SideBWinsHole)
		for h := sharedtypes.HoleNumber(2); h <= 8; h++ {
			record(t, m, h, HoleHalved)
		}
		record(t, m, 9, SideBWinsHole)
		st := m.Status()
		if !st.Decided || st.Winner != sharedtypes.TeamSideB || st.Score != "2UP" {
			t.Errorf("status = %+v, want B wins 2UP", st)
		}
	})
}

func TestMatchAllSquareFinal(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatFront9)
	record(t, m, 1, SideAWinsHole)
	record(t, m, 2, SideBWinsHole)
	for h := sharedtypes.HoleNumber(3); h <= 9; h++ {
		record(t, m, h, HoleHalved)
	}

	st := m.Status()
	if st.Decided {
		t.Fatal("tied final should not have a winner")
	}
	if !st.AllSquareFinal {
		t.Errorf("want all-square final, got %+v", st)
	}
	if got := st.StatusLine(); got != "AS" {
		t.Errorf("StatusLine() = %q, want AS", got)
	}
}

func TestMatchDormie(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatFull18)
	for h := sharedtypes.HoleNumber(1); h <= 3; h++ {
		record(t, m, h, SideAWinsHole)
	}
	for h := sharedtypes.HoleNumber(4); h <= 15; h++ {
		record(t, m, h, HoleHalved)
	}

	st := m.Status()
	if st.Decided {
		t.Fatal("3 up with 3 to play is not decided")
	}
	if !st.Dormie {
		t.Errorf("want dormie, got %+v", st)
	}
	if got := st.StatusLine(); got != "dormie A 3 thru 15" {
		t.Errorf("StatusLine() = %q", got)
	}
}

func TestBack9Offsets(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatBack9)

	if err := m.RecordResult(9, SideAWinsHole); !errors.Is(err, ErrHoleOutOfRange) {
		t.Errorf("hole 9 on back9 should be out of range, got %v", err)
	}

	// A wins 10-14 on the back nine: 5 up with 4 to play, decided at 14.
	for h := sharedtypes.HoleNumber(10); h <= 14; h++ {
		record(t, m, h, SideAWinsHole)
	}
	st := m.Status()
	if !st.Decided || st.Score != "5&4" || st.WinningHole != 14 {
		t.Errorf("back9 status = %+v, want 5&4 at hole 14", st)
	}
}

func TestMatchOutOfOrderEntryIsIdempotent(t *testing.T) {
	inOrder := mustMatch(t, sharedtypes.FormatFront9)
	outOfOrder := mustMatch(t, sharedtypes.FormatFront9)

	results := map[sharedtypes.HoleNumber]Result{
		1: SideAWinsHole, 2: SideBWinsHole, 3: SideAWinsHole,
	}
	for h := sharedtypes.HoleNumber(1); h <= 3; h++ {
		record(t, inOrder, h, results[h])
	}
	for _, h := range []sharedtypes.HoleNumber{3, 1, 2} {
		record(t, outOfOrder, h, results[h])
	}

	if inOrder.Status() != outOfOrder.Status() {
		t.Errorf("entry order changed status: %+v vs %+v", inOrder.Status(), outOfOrder.Status())
	}
}

func TestMatchInvalidInput(t *testing.T) {
	m := mustMatch(t, sharedtypes.FormatFull18)

	if err := m.RecordResult(19, SideAWinsHole); !errors.Is(err, ErrHoleOutOfRange) {
		t.Errorf("want ErrHoleOutOfRange, got %v", err)
	}
	if err := m.RecordResult(4, Result(3)); !errors.Is(err, ErrInvalidResult) {
		t.Errorf("want ErrInvalidResult, got %v", err)
	}
	if _, err := New(sharedtypes.RoundFormat("full36")); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("want ErrInvalidFormat, got %v", err)
	}
}

func TestBookPresses(t *testing.T) {
	book, err := NewBook(sharedtypes.FormatFull18)
	if err != nil {
		t.Fatal(err)
	}

	// A runs up 3 through 6; B presses at 7.
	for h := sharedtypes.HoleNumber(1); h <= 3; h++ {
		if err := book.Record(h, SideAWinsHole); err != nil {
			t.Fatal(err)
		}
	}
	for h := sharedtypes.HoleNumber(4); h <= 6; h++ {
		if err := book.Record(h, HoleHalved); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := book.StartPress(7); err != nil {
		t.Fatal(err)
	}

	// B takes 7 and 8: main narrows, press goes B's way.
	if err := book.Record(7, SideBWinsHole); err != nil {
		t.Fatal(err)
	}
	if err := book.Record(8, SideBWinsHole); err != nil {
		t.Fatal(err)
	}

	st := book.Status()
	if st.Main.Cumulative != 1 {
		t.Errorf("main cumulative = %d, want 1", st.Main.Cumulative)
	}
	if len(st.Presses) != 1 {
		t.Fatalf("want 1 press, got %d", len(st.Presses))
	}
	press := st.Presses[0]
	if press.Status.Cumulative != -2 {
		t.Errorf("press cumulative = %d, want -2", press.Status.Cumulative)
	}
	if got := press.Line(); got != "Press 1: B 2UP thru 8" {
		t.Errorf("press line = %q", got)
	}

	// A second press on the same hole is rejected; a later one is fine.
	if _, err := book.StartPress(7); !errors.Is(err, ErrDuplicatePress) {
		t.Errorf("want ErrDuplicatePress, got %v", err)
	}
	if _, err := book.StartPress(9); err != nil {
		t.Errorf("second press: %v", err)
	}
}

func TestBookPressWinsIndependently(t *testing.T) {
	book, err := NewBook(sharedtypes.FormatBack9)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := book.StartPress(13); err != nil {
		t.Fatal(err)
	}

	// A takes 10-11, then B sweeps 13-16. The 6-hole press is decided 4&2 at
	// hole 16 while the main match is only 2 down with 2 to play.
	for _, h := range []sharedtypes.HoleNumber{10, 11} {
		if err := book.Record(h, SideAWinsHole); err != nil {
			t.Fatal(err)
		}
	}
	if err := book.Record(12, HoleHalved); err != nil {
		t.Fatal(err)
	}
	for h := sharedtypes.HoleNumber(13); h <= 16; h++ {
		if err := book.Record(h, SideBWinsHole); err != nil {
			t.Fatal(err)
		}
	}

	st := book.Status()
	if st.Main.Decided {
		t.Errorf("main should still be open: %+v", st.Main)
	}
	if !st.Presses[0].Status.Decided || st.Presses[0].Status.Score != "4&2" {
		t.Errorf("press status = %+v, want decided 4&2", st.Presses[0].Status)
	}
}
