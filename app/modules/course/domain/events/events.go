// Package courseevents defines the course module's topics and payloads.
package courseevents

import (
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

const (
	CourseCreateRequestedV1 = "course.create.requested.v1"
	CourseCreatedV1         = "course.created.v1"
	CourseCreateFailedV1    = "course.create.failed.v1"
)

// CourseCreateRequestedPayloadV1 asks the course module to register a layout.
type CourseCreateRequestedPayloadV1 struct {
	CourseID string             `json:"course_id"`
	Name     string             `json:"name"`
	City     string             `json:"city,omitempty"`
	State    string             `json:"state,omitempty"`
	Holes    []sharedtypes.Hole `json:"holes"`
	Tees     []sharedtypes.Tee  `json:"tees"`
}

// CourseCreatedPayloadV1 announces a stored course.
type CourseCreatedPayloadV1 struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
}

// CourseCreateFailedPayloadV1 reports a rejected course registration.
type CourseCreateFailedPayloadV1 struct {
	CourseID string `json:"course_id"`
	Reason   string `json:"reason"`
}
