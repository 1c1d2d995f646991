package inmemdb

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

func TestEventRepository_RegisterUser_capacity(t *testing.T) {
	db := OpenEmpty()
	evtRepo := NewEventRepository(db)
	usrRepo := NewUserRepository(db)
	ctx := context.Background()

	const capacity = 5
	const attempts = 20

	evt, err := evtRepo.CreateEvent(ctx, event.Event{
		ID:              "evt",
		Title:           "Capacity Test",
		MaxParticipants: capacity,
		Status:          event.StatusUpcoming,
		CreatedAt:       nowUTC(),
	})
	require.NoError(t, err)

	for i := 0; i < attempts; i++ {
		_, err := usrRepo.CreateUser(ctx, user.User{
			ID:    fmt.Sprintf("u%d", i),
			Email: fmt.Sprintf("u%d@college.edu", i),
			Role:  user.RoleStudent,
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = evtRepo.RegisterUser(ctx, event.Registration{
				ID:           fmt.Sprintf("reg%d", i),
				EventID:      evt.ID,
				UserID:       fmt.Sprintf("u%d", i),
				RegisteredAt: nowUTC(),
				Status:       event.RegStatusRegistered,
			})
		}(i)
	}
	wg.Wait()

	var ok, full int
	for _, err := range errs {
		switch err {
		case nil:
			ok++
		case event.ErrEventFull:
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, ok)
	assert.Equal(t, attempts-capacity, full)

	got, err := evtRepo.GetEventByID(ctx, evt.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, got.Participants)

	regs, err := evtRepo.QueryAllRegistrations(ctx)
	require.NoError(t, err)
	assert.Len(t, regs, capacity)
}

func TestEventRepository_RegisterUser_duplicate(t *testing.T) {
	db := OpenEmpty()
	evtRepo := NewEventRepository(db)
	usrRepo := NewUserRepository(db)
	ctx := context.Background()

	_, err := evtRepo.CreateEvent(ctx, event.Event{ID: "evt", Title: "T", MaxParticipants: 10, CreatedAt: nowUTC()})
	require.NoError(t, err)
	_, err = usrRepo.CreateUser(ctx, user.User{ID: "u1", Email: "u1@college.edu"})
	require.NoError(t, err)

	reg := event.Registration{ID: "reg1", EventID: "evt", UserID: "u1", RegisteredAt: nowUTC()}
	_, err = evtRepo.RegisterUser(ctx, reg)
	require.NoError(t, err)

	reg.ID = "reg2"
	_, err = evtRepo.RegisterUser(ctx, reg)
	assert.Equal(t, event.ErrAlreadyRegistered, err)

	usr, err := usrRepo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, usr.EventsAttended)
	assert.Equal(t, 50, usr.TotalPoints)
}

func TestEventRepository_UpdateEvent_capacityFloor(t *testing.T) {
	db := OpenEmpty()
	repo := NewEventRepository(db)
	ctx := context.Background()

	evt, err := repo.CreateEvent(ctx, event.Event{ID: "evt", Title: "T", Participants: 45, MaxParticipants: 50, CreatedAt: nowUTC()})
	require.NoError(t, err)

	evt.MaxParticipants = 10
	_, err = repo.UpdateEvent(ctx, evt)
	assert.Error(t, err)

	got, err := repo.GetEventByID(ctx, "evt")
	require.NoError(t, err)
	assert.Equal(t, 50, got.MaxParticipants)
	assert.Equal(t, 45, got.Participants)
}
