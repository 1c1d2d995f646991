// Package inmemdb is the demo-mode store: the same repository interfaces the
// Postgres store implements, backed by maps seeded with the canonical sample
// data. It is selected once at startup when no database is configured; none
// of its writes survive a restart.
package inmemdb

import (
	"sort"
	"sync"
	"time"

	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

// DB holds all tables behind a single lock so the multi-step workflows
// (registration, issuance) are as atomic here as they are in a Postgres
// transaction.
type DB struct {
	mu sync.RWMutex

	users         map[string]*user.User
	events        map[string]*event.Event
	registrations map[string]*event.Registration
	certificates  map[string]*certificate.Certificate
	templates     map[string]*certificate.Template
}

// Open returns a store seeded with the demo fixtures.
func Open() (*DB, error) {
	db := &DB{
		users:         make(map[string]*user.User),
		events:        make(map[string]*event.Event),
		registrations: make(map[string]*event.Registration),
		certificates:  make(map[string]*certificate.Certificate),
		templates:     make(map[string]*certificate.Template),
	}
	db.seed()
	return db, nil
}

// OpenEmpty returns an unseeded store; used by tests that want full control
// over the fixtures.
func OpenEmpty() *DB {
	return &DB{
		users:         make(map[string]*user.User),
		events:        make(map[string]*event.Event),
		registrations: make(map[string]*event.Registration),
		certificates:  make(map[string]*certificate.Certificate),
		templates:     make(map[string]*certificate.Template),
	}
}

func nowUTC() time.Time { return time.Now().UTC() }

// Every listing is returned newest first, matching the ORDER BY
// created_at DESC queries of the Postgres store.

func sortUsersNewestFirst(users []user.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
}

func sortEventsNewestFirst(events []event.Event) {
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
}

func sortRegistrationsNewestFirst(regs []event.Registration) {
	sort.Slice(regs, func(i, j int) bool { return regs[i].RegisteredAt.After(regs[j].RegisteredAt) })
}

func sortCertificatesNewestFirst(certs []certificate.Certificate) {
	sort.Slice(certs, func(i, j int) bool { return certs[i].CreatedAt.After(certs[j].CreatedAt) })
}

func sortTemplatesNewestFirst(tpls []certificate.Template) {
	sort.Slice(tpls, func(i, j int) bool { return tpls[i].CreatedAt.After(tpls[j].CreatedAt) })
}
