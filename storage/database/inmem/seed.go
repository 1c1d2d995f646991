package inmemdb

import (
	"time"

	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

// seed loads the canonical sample data. CreatedAt values are staggered so the
// newest-first listings come out in the same order as the fixtures are
// declared here.
func (db *DB) seed() {
	base := time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	at := func(i int) time.Time { return base.Add(-time.Duration(i) * time.Minute) }

	users := []user.User{
		{
			ID:       "1",
			Name:     "Admin User",
			Email:    "admin@pulse.com",
			Role:     user.RoleAdmin,
			JoinDate: "2024-01-01",
			Rank:     1,
		},
		{
			ID:                 "2",
			Name:               "John Doe",
			Email:              "john.doe@college.edu",
			Role:               user.RoleStudent,
			RollNumber:         "ECE2024001",
			JoinDate:           "2024-01-15",
			CertificatesEarned: 5,
			EventsAttended:     8,
			TotalPoints:        450,
			Rank:               12,
		},
		{
			ID:                 "3",
			Name:               "Jane Smith",
			Email:              "jane.smith@college.edu",
			Role:               user.RoleStudent,
			RollNumber:         "ECE2024002",
			JoinDate:           "2024-01-16",
			CertificatesEarned: 3,
			EventsAttended:     6,
			TotalPoints:        320,
			Rank:               18,
		},
	}
	for i := range users {
		users[i].CreatedAt = at(i)
		users[i].UpdatedAt = at(i)
		db.users[users[i].ID] = &users[i]
	}

	events := []event.Event{
		{
			ID:              "1",
			Title:           "Web Development Workshop",
			Description:     "Learn modern web development with React and Next.js",
			Date:            "2024-02-15",
			Time:            "10:00 AM",
			Location:        "Computer Lab 1",
			Category:        "workshop",
			Participants:    45,
			MaxParticipants: 50,
			Status:          event.StatusActive,
			AccessKey:       "PULSE2024WEB",
			CreatedBy:       "1",
		},
		{
			ID:              "2",
			Title:           "AI/ML Symposium 2024",
			Description:     "Annual symposium on Artificial Intelligence and Machine Learning",
			Date:            "2024-02-20",
			Time:            "9:00 AM",
			Location:        "Main Auditorium",
			Category:        "symposium",
			Participants:    120,
			MaxParticipants: 200,
			Status:          event.StatusUpcoming,
			AccessKey:       "PULSE2024AI",
			CreatedBy:       "1",
		},
		{
			ID:              "3",
			Title:           "Technical Quiz Competition",
			Description:     "Test your technical knowledge across various domains",
			Date:            "2024-01-30",
			Time:            "2:00 PM",
			Location:        "Seminar Hall",
			Category:        "competition",
			Participants:    80,
			MaxParticipants: 100,
			Status:          event.StatusCompleted,
			AccessKey:       "PULSE2024QUIZ",
			CreatedBy:       "1",
		},
	}
	for i := range events {
		events[i].CreatedAt = at(i)
		events[i].UpdatedAt = at(i)
		db.events[events[i].ID] = &events[i]
	}

	certs := []certificate.Certificate{
		{
			ID:          "1",
			StudentID:   "2",
			EventID:     "3",
			StudentName: "John Doe",
			RollNumber:  "ECE2024001",
			EventName:   "Technical Quiz Competition",
			IssueDate:   "2024-01-30",
			DownloadURL: "#",
			Status:      certificate.StatusDownloaded,
		},
	}
	for i := range certs {
		certs[i].CreatedAt = at(i)
		db.certificates[certs[i].ID] = &certs[i]
	}

	templates := []certificate.Template{
		{
			ID:          "1",
			Name:        "Workshop Certificate",
			Description: "Standard template for workshop completion certificates",
			Category:    "workshop",
			Usage:       156,
			IsActive:    true,
			CreatedBy:   "1",
		},
		{
			ID:          "2",
			Name:        "Competition Winner",
			Description: "Template for competition winners and participants",
			Category:    "competition",
			Usage:       89,
			IsActive:    true,
			CreatedBy:   "1",
		},
	}
	for i := range templates {
		templates[i].CreatedAt = at(i)
		templates[i].UpdatedAt = at(i)
		db.templates[templates[i].ID] = &templates[i]
	}
}
