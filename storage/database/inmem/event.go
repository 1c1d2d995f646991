package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	events := make([]event.Event, 0, len(repo.db.events))
	for _, evt := range repo.db.events {
		events = append(events, *evt)
	}
	sortEventsNewestFirst(events)
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	evt, ok := repo.db.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return *evt, nil
}

func (repo *eventRepository) GetEventByAccessKey(ctx context.Context, key string) (event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, evt := range repo.db.events {
		if evt.AccessKey == key {
			return *evt, nil
		}
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	existing, ok := repo.db.events[evt.ID]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	if evt.MaxParticipants < existing.Participants {
		return event.Event{}, core.NewValidationError(
			errors.New("maxParticipants cannot drop below the current participant count"),
			core.FieldError{Field: "maxParticipants", Error: "below current participant count"},
		)
	}
	evt.Participants = existing.Participants
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.events[id]; !ok {
		return event.ErrNotFound
	}
	delete(repo.db.events, id)
	for regID, reg := range repo.db.registrations {
		if reg.EventID == id {
			delete(repo.db.registrations, regID)
		}
	}
	return nil
}

// RegisterUser runs the whole registration workflow under the single store
// lock: duplicate check, capacity check, insert, counter bumps.
func (repo *eventRepository) RegisterUser(ctx context.Context, reg event.Registration) (event.Registration, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, existing := range repo.db.registrations {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return event.Registration{}, event.ErrAlreadyRegistered
		}
	}

	evt, ok := repo.db.events[reg.EventID]
	if !ok {
		return event.Registration{}, event.ErrNotFound
	}
	if evt.IsFull() {
		return event.Registration{}, event.ErrEventFull
	}

	evt.Participants++
	evt.UpdatedAt = nowUTC()
	if usr, ok := repo.db.users[reg.UserID]; ok {
		usr.EventsAttended++
		usr.TotalPoints += 50
		usr.UpdatedAt = nowUTC()
	}

	repo.db.registrations[reg.ID] = &reg
	return reg, nil
}

func (repo *eventRepository) QueryUserRegistrations(ctx context.Context, userID string) ([]event.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var regs []event.Registration
	for _, reg := range repo.db.registrations {
		if reg.UserID != userID {
			continue
		}
		regs = append(regs, repo.joined(*reg, false /* withUser */))
	}
	sortRegistrationsNewestFirst(regs)
	return regs, nil
}

func (repo *eventRepository) QueryAllRegistrations(ctx context.Context) ([]event.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	regs := make([]event.Registration, 0, len(repo.db.registrations))
	for _, reg := range repo.db.registrations {
		regs = append(regs, repo.joined(*reg, true /* withUser */))
	}
	sortRegistrationsNewestFirst(regs)
	return regs, nil
}

// joined attaches copies of the registration's event (and optionally user).
// Caller must hold the lock.
func (repo *eventRepository) joined(reg event.Registration, withUser bool) event.Registration {
	if evt, ok := repo.db.events[reg.EventID]; ok {
		evtCopy := *evt
		reg.Event = &evtCopy
	}
	if withUser {
		if usr, ok := repo.db.users[reg.UserID]; ok {
			usrCopy := *usr
			reg.User = &usrCopy
		}
	}
	return reg
}
