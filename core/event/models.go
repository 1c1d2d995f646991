package event

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/user"
)

// Event statuses
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Registration statuses
const (
	RegStatusRegistered = "registered"
	RegStatusAttended   = "attended"
)

// DefaultMaxParticipants applies when an event is created without an
// explicit capacity.
const DefaultMaxParticipants = 100

type Event struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Date            string    `json:"date" db:"date"` // YYYY-MM-DD
	Time            string    `json:"time" db:"time"`
	Location        string    `json:"location" db:"location"`
	Category        string    `json:"category" db:"category"`
	Participants    int       `json:"participants" db:"participants"`
	MaxParticipants int       `json:"maxParticipants" db:"max_participants"`
	Status          string    `json:"status" db:"status"`
	AccessKey       string    `json:"accessKey" db:"access_key"`
	CreatedBy       string    `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (e *Event) IsFull() bool { return e.Participants >= e.MaxParticipants }

// Registration links a user to an event. Event and User are populated on
// joined reads only.
type Registration struct {
	ID           string     `json:"id" db:"id"`
	EventID      string     `json:"eventId" db:"event_id"`
	UserID       string     `json:"userId" db:"user_id"`
	RegisteredAt time.Time  `json:"registeredAt" db:"registered_at"` // UTC
	Status       string     `json:"status" db:"status"`
	Event        *Event     `json:"event,omitempty" db:"-"`
	User         *user.User `json:"user,omitempty" db:"-"`
}

// NewAccessKey generates the per-event capability key students later redeem
// for certificates. The format is pinned: "PULSE" + unix milliseconds.
func NewAccessKey() string {
	return fmt.Sprintf("PULSE%d", time.Now().UnixNano()/int64(time.Millisecond))
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"maxParticipants" validate:"omitempty,min=1"`
	Category        string `json:"category"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Date = core.CleanString(ne.Date)
	ne.Time = core.CleanString(ne.Time)
	ne.Location = core.CleanString(ne.Location)
	ne.Category = core.CleanString(ne.Category, true /* lower */)
	return validate.Struct(ne)
}

// UpdateEvent defines what may be modified on an existing Event. Zero-valued
// fields are left untouched.
type UpdateEvent struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"maxParticipants" validate:"omitempty,min=1"`
	Category        string `json:"category"`
	Status          string `json:"status" validate:"omitempty,oneof=upcoming active completed"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.Title = core.CleanString(ue.Title)
	ue.Status = core.CleanString(ue.Status, true /* lower */)
	return validate.Struct(ue)
}

// Apply merges the set fields onto an existing event.
func (ue *UpdateEvent) Apply(evt Event) Event {
	if ue.Title != "" {
		evt.Title = ue.Title
	}
	if ue.Description != "" {
		evt.Description = ue.Description
	}
	if ue.Date != "" {
		evt.Date = ue.Date
	}
	if ue.Time != "" {
		evt.Time = ue.Time
	}
	if ue.Location != "" {
		evt.Location = ue.Location
	}
	if ue.MaxParticipants > 0 {
		evt.MaxParticipants = ue.MaxParticipants
	}
	if ue.Category != "" {
		evt.Category = ue.Category
	}
	if ue.Status != "" {
		evt.Status = ue.Status
	}
	return evt
}

// RegisterRequest is the body of a registration attempt.
type RegisterRequest struct {
	EventID string `json:"eventId" validate:"required"`
}

func (rr *RegisterRequest) Validate(validate *validator.Validate) error {
	rr.EventID = core.CleanString(rr.EventID)
	return validate.Struct(rr)
}
