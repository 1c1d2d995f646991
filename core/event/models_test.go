package event

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAccessKey(t *testing.T) {
	rx := regexp.MustCompile(`^PULSE\d{13,}$`)
	key := NewAccessKey()
	assert.Regexp(t, rx, key)
}

func TestUpdateEvent_Apply(t *testing.T) {
	existing := Event{
		Title:           "Web Development Workshop",
		Date:            "2024-02-15",
		Time:            "10:00 AM",
		Location:        "Computer Lab 1",
		Category:        "workshop",
		Participants:    45,
		MaxParticipants: 50,
		Status:          StatusActive,
		AccessKey:       "PULSE2024WEB",
	}

	t.Run("zero-valued fields are untouched", func(t *testing.T) {
		got := (&UpdateEvent{Status: StatusCompleted}).Apply(existing)
		assert.Equal(t, StatusCompleted, got.Status)
		assert.Equal(t, existing.Title, got.Title)
		assert.Equal(t, existing.Location, got.Location)
		assert.Equal(t, existing.Participants, got.Participants)
		assert.Equal(t, existing.AccessKey, got.AccessKey)
	})

	t.Run("set fields win", func(t *testing.T) {
		upd := UpdateEvent{Title: "Advanced Web Workshop", Location: "Auditorium", MaxParticipants: 80}
		got := (&upd).Apply(existing)
		assert.Equal(t, "Advanced Web Workshop", got.Title)
		assert.Equal(t, "Auditorium", got.Location)
		assert.Equal(t, 80, got.MaxParticipants)
		assert.Equal(t, existing.Date, got.Date)
	})
}

func TestEvent_IsFull(t *testing.T) {
	assert.False(t, (&Event{Participants: 49, MaxParticipants: 50}).IsFull())
	assert.True(t, (&Event{Participants: 50, MaxParticipants: 50}).IsFull())
	assert.True(t, (&Event{Participants: 51, MaxParticipants: 50}).IsFull())
}
