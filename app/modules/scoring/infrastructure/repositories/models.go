package scoringdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// RoundStateRecord is the scoring module's own copy of a round's scorecard
// state. It is seeded from the round-created event and mutated only here;
// the round module's tables are never read.
type RoundStateRecord struct {
	bun.BaseModel `bun:"table:round_states"`

	RoundID     sharedtypes.RoundID   `bun:"round_id,pk"`
	State       *scorecard.RoundState `bun:"state,type:jsonb,notnull"`
	FinalizedAt *time.Time            `bun:"finalized_at"`
	CreatedAt   time.Time             `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time             `bun:"updated_at,notnull,default:current_timestamp"`
}

// Finalized reports whether the round's standings are locked.
func (r *RoundStateRecord) Finalized() bool { return r.FinalizedAt != nil }

// StandingsRecord is the latest computed standings snapshot for a round.
type StandingsRecord struct {
	bun.BaseModel `bun:"table:round_standings"`

	RoundID   sharedtypes.RoundID `bun:"round_id,pk"`
	Results   *scorecard.Results  `bun:"results,type:jsonb,notnull"`
	UpdatedAt time.Time           `bun:"updated_at,notnull,default:current_timestamp"`
}
