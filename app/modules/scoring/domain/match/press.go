package match

import (
	"errors"
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

var ErrDuplicatePress = errors.New("press already started on this hole")

// Press is a sub-match opened mid-round, scored independently from its start
// hole to the end of the format.
type Press struct {
	Number    int
	StartHole sharedtypes.HoleNumber
	Match     *Match
}

// Book is a main match plus its presses. Hole results fan out to the main
// match and to every press whose range covers the hole, so a single score
// entry keeps all concurrent wagers consistent.
type Book struct {
	Main    *Match
	Presses []*Press
}

// NewBook creates a book with an empty main match for the format.
func NewBook(format sharedtypes.RoundFormat) (*Book, error) {
	main, err := New(format)
	if err != nil {
		return nil, err
	}
	return &Book{Main: main}, nil
}

// StartPress opens a new press beginning at startHole. Whether the trailing
// side alone may press is a house rule enforced by the caller; the book only
// validates the hole range and rejects a duplicate press on the same hole.
func (b *Book) StartPress(startHole sharedtypes.HoleNumber) (*Press, error) {
	for _, p := range b.Presses {
		if p.StartHole == startHole {
			return nil, fmt.Errorf("%w: hole %d", ErrDuplicatePress, startHole)
		}
	}

	sub, err := NewFrom(b.Main.Format(), startHole)
	if err != nil {
		return nil, err
	}

	press := &Press{
		Number:    len(b.Presses) + 1,
		StartHole: startHole,
		Match:     sub,
	}
	b.Presses = append(b.Presses, press)
	return press, nil
}

// Record writes a hole result into the main match and every press covering
// the hole.
func (b *Book) Record(hole sharedtypes.HoleNumber, r Result) error {
	if err := b.Main.RecordResult(hole, r); err != nil {
		return err
	}
	for _, p := range b.Presses {
		if hole < p.StartHole {
			continue
		}
		if err := p.Match.RecordResult(hole, r); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes a hole result from the main match and every covering press.
func (b *Book) Clear(hole sharedtypes.HoleNumber) error {
	if err := b.Main.ClearResult(hole); err != nil {
		return err
	}
	for _, p := range b.Presses {
		if hole < p.StartHole {
			continue
		}
		if err := p.Match.ClearResult(hole); err != nil {
			return err
		}
	}
	return nil
}

// PressStatus pairs a press with its evaluated status.
type PressStatus struct {
	Number    int                    `json:"number"`
	StartHole sharedtypes.HoleNumber `json:"start_hole"`
	Status    Status                 `json:"status"`
}

// Line renders the press status string, e.g. "Press 2: A 1UP thru 14".
func (ps PressStatus) Line() string {
	return fmt.Sprintf("Press %d: %s", ps.Number, ps.Status.StatusLine())
}

// BookStatus is the evaluated state of a main match and all its presses.
type BookStatus struct {
	Main    Status        `json:"main"`
	Presses []PressStatus `json:"presses,omitempty"`
}

// Status evaluates the main match and every press.
func (b *Book) Status() BookStatus {
	out := BookStatus{Main: b.Main.Status()}
	for _, p := range b.Presses {
		out.Presses = append(out.Presses, PressStatus{
			Number:    p.Number,
			StartHole: p.StartHole,
			Status:    p.Match.Status(),
		})
	}
	return out
}
