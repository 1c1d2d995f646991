package event

import "time"

// Demo users always see the same two registrations, regardless of which
// store backs the portal.
func demoRegistrationsFor(userID string) []Registration {
	return []Registration{
		{
			ID:           "1",
			EventID:      "demo-event-1",
			UserID:       userID,
			RegisteredAt: time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
			Status:       RegStatusRegistered,
			Event: &Event{
				ID:          "demo-event-1",
				Title:       "React Workshop 2024",
				Description: "Advanced React concepts and best practices",
				Date:        "2024-02-15",
				Time:        "10:00:00",
				Location:    "Computer Lab",
			},
		},
		{
			ID:           "2",
			EventID:      "demo-event-2",
			UserID:       userID,
			RegisteredAt: time.Date(2024, time.January, 20, 14, 0, 0, 0, time.UTC),
			Status:       RegStatusRegistered,
			Event: &Event{
				ID:          "demo-event-2",
				Title:       "AI/ML Symposium",
				Description: "Introduction to Machine Learning concepts",
				Date:        "2024-02-25",
				Time:        "14:00:00",
				Location:    "Main Auditorium",
			},
		},
	}
}
