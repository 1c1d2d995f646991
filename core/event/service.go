package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core/user"
)

var (
	// errors; texts are part of the API contract
	ErrNotFound          = errors.New("Event not found")
	ErrEventFull         = errors.New("Event is full")
	ErrAlreadyRegistered = errors.New("Already registered for this event")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		QueryAllEvents(ctx context.Context) ([]Event, error)
		GetEventByID(ctx context.Context, id string) (Event, error)
		GetEventByAccessKey(ctx context.Context, key string) (Event, error)
		UpdateEvent(ctx context.Context, evt Event) (Event, error)
		DeleteEvent(ctx context.Context, id string) error

		// RegisterUser performs the whole registration workflow atomically:
		// duplicate check, capacity check, registration insert, event
		// participant count + user stat increments. It returns
		// ErrAlreadyRegistered, ErrNotFound or ErrEventFull respectively.
		RegisterUser(ctx context.Context, reg Registration) (Registration, error)
		QueryUserRegistrations(ctx context.Context, userID string) ([]Registration, error)
		QueryAllRegistrations(ctx context.Context) ([]Registration, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create sets up a new event with a fresh access key and no participants.
func (svc *Service) Create(ctx context.Context, creatorID string, ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	maxParticipants := ne.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = DefaultMaxParticipants
	}
	evt := Event{
		ID:              uuid.New().String(),
		Title:           ne.Title,
		Description:     ne.Description,
		Date:            ne.Date,
		Time:            ne.Time,
		Location:        ne.Location,
		Category:        ne.Category,
		MaxParticipants: maxParticipants,
		Status:          StatusUpcoming,
		AccessKey:       NewAccessKey(),
		CreatedBy:       creatorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateEvent(ctx, evt)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

func (svc *Service) GetByAccessKey(ctx context.Context, key string) (Event, error) {
	return svc.repo.GetEventByAccessKey(ctx, key)
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEvent) (Event, error) {
	evt, err := svc.repo.GetEventByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	evt = ue.Apply(evt)
	evt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvent(ctx, evt)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteEvent(ctx, id)
}

// Register registers the user for an event. Demo users get a synthesized
// success and are never persisted.
func (svc *Service) Register(ctx context.Context, usr user.User, eventID string) (Registration, error) {
	now := time.Now().UTC()
	if user.IsDemoID(usr.ID) {
		return Registration{
			ID:           fmt.Sprintf("reg-%d", now.UnixNano()/int64(time.Millisecond)),
			EventID:      eventID,
			UserID:       usr.ID,
			RegisteredAt: now,
			Status:       RegStatusRegistered,
		}, nil
	}

	reg := Registration{
		ID:           uuid.New().String(),
		EventID:      eventID,
		UserID:       usr.ID,
		RegisteredAt: now,
		Status:       RegStatusRegistered,
	}
	return svc.repo.RegisterUser(ctx, reg)
}

// UserRegistrations lists the caller's registrations, newest first, joined
// with their events. Demo users get the canonical fixtures.
func (svc *Service) UserRegistrations(ctx context.Context, userID string) ([]Registration, error) {
	if user.IsDemoID(userID) {
		return demoRegistrationsFor(userID), nil
	}
	return svc.repo.QueryUserRegistrations(ctx, userID)
}

// AllRegistrations lists every registration joined with event and user.
func (svc *Service) AllRegistrations(ctx context.Context) ([]Registration, error) {
	return svc.repo.QueryAllRegistrations(ctx)
}
