package pgdb

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	const query = `
INSERT INTO events (id, title, description, date, time, location, category, participants,
                    max_participants, status, access_key, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :date, :time, :location, :category, :participants,
        :max_participants, :status, :access_key, :created_by, :created_at, :updated_at)`

	if _, err := repo.db.NamedExecContext(ctx, query, evt); err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	const query = `SELECT * FROM events ORDER BY created_at DESC`

	var events []event.Event
	if err := repo.db.SelectContext(ctx, &events, query); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	return repo.getEvent(ctx, `SELECT * FROM events WHERE id = $1`, id)
}

func (repo *eventRepository) GetEventByAccessKey(ctx context.Context, key string) (event.Event, error) {
	return repo.getEvent(ctx, `SELECT * FROM events WHERE access_key = $1`, key)
}

func (repo *eventRepository) getEvent(ctx context.Context, query, arg string) (event.Event, error) {
	var evt event.Event
	if err := repo.db.GetContext(ctx, &evt, query, arg); err != nil {
		if isNoRows(err) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting event")
	}
	return evt, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	const query = `
UPDATE events
SET title = :title, description = :description, date = :date, time = :time,
    location = :location, category = :category, max_participants = :max_participants,
    status = :status, updated_at = :updated_at
WHERE id = :id`

	res, err := repo.db.NamedExecContext(ctx, query, evt)
	if err != nil {
		if isCheckViolation(err) {
			return event.Event{}, core.NewValidationError(errors.New("maxParticipants cannot drop below the current participant count"),
				core.FieldError{Field: "maxParticipants", Error: "below current participant count"})
		}
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return evt, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.ErrNotFound
	}
	return nil
}

// RegisterUser runs the whole registration workflow in one transaction:
// duplicate check, conditional participant increment (capacity), the
// registration insert, and the user's stat counters. The unique constraint
// on (event_id, user_id) backstops the duplicate check under concurrency.
func (repo *eventRepository) RegisterUser(ctx context.Context, reg event.Registration) (event.Registration, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return event.Registration{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2)`,
		reg.EventID, reg.UserID)
	if err != nil {
		return event.Registration{}, errors.Wrap(err, "checking existing registration")
	}
	if exists {
		return event.Registration{}, event.ErrAlreadyRegistered
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE events SET participants = participants + 1, updated_at = $2
		 WHERE id = $1 AND participants < max_participants`,
		reg.EventID, time.Now().UTC())
	if err != nil {
		return event.Registration{}, errors.Wrap(err, "incrementing participants")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// either the event does not exist or it is full
		err = tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, reg.EventID)
		if err != nil {
			return event.Registration{}, errors.Wrap(err, "checking event existence")
		}
		if !exists {
			return event.Registration{}, event.ErrNotFound
		}
		return event.Registration{}, event.ErrEventFull
	}

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO event_registrations (id, event_id, user_id, registered_at, status)
		 VALUES (:id, :event_id, :user_id, :registered_at, :status)`, reg)
	if err != nil {
		if isUniqueViolation(err) {
			return event.Registration{}, event.ErrAlreadyRegistered
		}
		return event.Registration{}, errors.Wrap(err, "inserting registration")
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET events_attended = events_attended + 1, total_points = total_points + 50,
		        updated_at = $2
		 WHERE id = $1`,
		reg.UserID, time.Now().UTC())
	if err != nil {
		return event.Registration{}, errors.Wrap(err, "updating user stats")
	}

	if err = tx.Commit(); err != nil {
		return event.Registration{}, errors.Wrap(err, "committing registration")
	}
	return reg, nil
}

// registrationRow flattens the registration/event/user join.
type registrationRow struct {
	ID           string         `db:"id"`
	EventID      string         `db:"event_id"`
	UserID       string         `db:"user_id"`
	RegisteredAt time.Time      `db:"registered_at"`
	Status       string         `db:"status"`
	EvtTitle     string         `db:"evt_title"`
	EvtDesc      string         `db:"evt_description"`
	EvtDate      string         `db:"evt_date"`
	EvtTime      string         `db:"evt_time"`
	EvtLocation  string         `db:"evt_location"`
	EvtStatus    string         `db:"evt_status"`
	UsrName      sql.NullString `db:"usr_name"`
	UsrEmail     sql.NullString `db:"usr_email"`
	UsrRoll      sql.NullString `db:"usr_roll_number"`
}

func (row registrationRow) toRegistration(withUser bool) event.Registration {
	reg := event.Registration{
		ID:           row.ID,
		EventID:      row.EventID,
		UserID:       row.UserID,
		RegisteredAt: row.RegisteredAt,
		Status:       row.Status,
		Event: &event.Event{
			ID:          row.EventID,
			Title:       row.EvtTitle,
			Description: row.EvtDesc,
			Date:        row.EvtDate,
			Time:        row.EvtTime,
			Location:    row.EvtLocation,
			Status:      row.EvtStatus,
		},
	}
	if withUser {
		reg.User = &user.User{
			ID:         row.UserID,
			Name:       row.UsrName.String,
			Email:      row.UsrEmail.String,
			RollNumber: row.UsrRoll.String,
		}
	}
	return reg
}

func (repo *eventRepository) QueryUserRegistrations(ctx context.Context, userID string) ([]event.Registration, error) {
	const query = `
SELECT r.id, r.event_id, r.user_id, r.registered_at, r.status,
       e.title AS evt_title, e.description AS evt_description, e.date AS evt_date,
       e.time AS evt_time, e.location AS evt_location, e.status AS evt_status
FROM event_registrations r
JOIN events e ON e.id = r.event_id
WHERE r.user_id = $1
ORDER BY r.registered_at DESC`

	var rows []registrationRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, errors.Wrap(err, "querying user registrations")
	}
	regs := make([]event.Registration, 0, len(rows))
	for _, row := range rows {
		regs = append(regs, row.toRegistration(false))
	}
	return regs, nil
}

func (repo *eventRepository) QueryAllRegistrations(ctx context.Context) ([]event.Registration, error) {
	const query = `
SELECT r.id, r.event_id, r.user_id, r.registered_at, r.status,
       e.title AS evt_title, e.description AS evt_description, e.date AS evt_date,
       e.time AS evt_time, e.location AS evt_location, e.status AS evt_status,
       u.name AS usr_name, u.email AS usr_email, u.roll_number AS usr_roll_number
FROM event_registrations r
JOIN events e ON e.id = r.event_id
JOIN users u ON u.id = r.user_id
ORDER BY r.registered_at DESC`

	var rows []registrationRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying registrations")
	}
	regs := make([]event.Registration, 0, len(rows))
	for _, row := range rows {
		regs = append(regs, row.toRegistration(true))
	}
	return regs, nil
}
