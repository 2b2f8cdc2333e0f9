package rounddb

import (
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Round statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinalized  = "finalized"
	StatusCancelled  = "cancelled"
)

// Round is the stored round: scheduling metadata plus the full scorecard
// state snapshot.
type Round struct {
	ID        sharedtypes.RoundID     `bun:"id,pk"`
	CourseID  string                  `bun:"course_id,notnull"`
	Format    sharedtypes.RoundFormat `bun:"format,notnull"`
	TeeTime   time.Time               `bun:"tee_time,notnull"`
	Status    string                  `bun:"status,notnull,default:'scheduled'"`
	CreatedBy sharedtypes.GolferID    `bun:"created_by,notnull"`
	State     *scorecard.RoundState   `bun:"state,type:jsonb,notnull"`
	CreatedAt time.Time               `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time               `bun:"updated_at,notnull,default:current_timestamp"`
}
