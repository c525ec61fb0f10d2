// Package session holds one orchestrator per browser session: wizard state
// machine, single-flight guard, confirmation runner, resend cooldown and a
// dedicated remote client with its own cookie jar. Nothing here is global;
// every collaborator receives the session by reference.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roygutt18/quiteSlot/internal/calendar"
	"github.com/roygutt18/quiteSlot/internal/remote"
	"github.com/roygutt18/quiteSlot/internal/wizard"
)

type Session struct {
	Token     uuid.UUID
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time

	Machine *wizard.Machine
	Guard   *wizard.Guard
	Confirm *wizard.Runner
	Resend  *wizard.Cooldown
	Remote  *remote.Client

	// Cached remote reads, owned by the orchestrating service.
	Month        calendar.Month
	WorkingDays  calendar.WorkingDays
	Services     []remote.Service
	Slots        []string
	Appointments []remote.Appointment

	// PendingPhone is the number a one-time code was sent to, kept until
	// verification completes.
	PendingPhone string

	// bootstrapped flips once the identity and catalog have been loaded.
	Bootstrapped bool
}

func New(token uuid.UUID, client *remote.Client, resendCooldown time.Duration) *Session {
	now := time.Now()
	guard := wizard.NewGuard()
	return &Session{
		Token:     token,
		CreatedAt: now,
		lastSeen:  now,
		Machine:   wizard.NewMachine(),
		Guard:     guard,
		Confirm:   wizard.NewRunner(guard),
		Resend:    wizard.NewCooldown(resendCooldown),
		Remote:    client,
		Month:     calendar.MonthOf(now),
	}
}

// ResetWizard clears the whole pass: machine, cached lists, pending phone and
// any pending confirmation. Callers hold the session lock.
func (s *Session) ResetWizard() {
	s.Machine.Reset()
	s.Slots = nil
	s.Appointments = nil
	s.PendingPhone = ""
	s.Confirm.Clear()
}

// Lock serializes orchestration on this session. All wizard state is read and
// written under this lock; remote calls happen with it released.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
