package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roygutt18/quiteSlot/internal/remote"
)

func testFactory(t *testing.T) ClientFactory {
	t.Helper()
	return func() (*remote.Client, error) {
		return remote.NewClient("http://localhost:5000", time.Second, zap.NewNop())
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(testFactory(t), time.Hour, 120*time.Second, zap.NewNop())
	t.Cleanup(m.Close)
	return m
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager(t)

	s, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.Token == uuid.Nil {
		t.Fatal("session has no token")
	}
	if s.Machine == nil || s.Guard == nil || s.Confirm == nil || s.Remote == nil {
		t.Fatal("session missing collaborators")
	}

	got, ok := m.Get(s.Token)
	if !ok || got != s {
		t.Fatal("Get() did not return the created session")
	}
	if _, ok := m.Get(uuid.New()); ok {
		t.Fatal("Get() found an unknown token")
	}
	if m.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", m.Count())
	}
}

func TestManager_EachSessionGetsOwnClient(t *testing.T) {
	m := newTestManager(t)

	a, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if a.Remote == b.Remote {
		t.Fatal("sessions share a remote client")
	}
	if a.Token == b.Token {
		t.Fatal("sessions share a token")
	}
}

func TestManager_Drop(t *testing.T) {
	m := newTestManager(t)
	s, _ := m.Create()

	m.Drop(s.Token)
	if _, ok := m.Get(s.Token); ok {
		t.Fatal("dropped session still reachable")
	}
	if m.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", m.Count())
	}
}

func TestManager_EvictIdle(t *testing.T) {
	m := NewManager(testFactory(t), 10*time.Millisecond, 120*time.Second, zap.NewNop())
	t.Cleanup(m.Close)

	stale, _ := m.Create()
	time.Sleep(20 * time.Millisecond)
	fresh, _ := m.Create()

	m.evictIdle()

	if _, ok := m.Get(stale.Token); ok {
		t.Fatal("idle session survived eviction")
	}
	if _, ok := m.Get(fresh.Token); !ok {
		t.Fatal("fresh session was evicted")
	}
}

func TestManager_CreateFailsWhenFactoryFails(t *testing.T) {
	boom := errors.New("no client")
	m := NewManager(func() (*remote.Client, error) { return nil, boom }, time.Hour, time.Second, zap.NewNop())
	t.Cleanup(m.Close)

	if _, err := m.Create(); !errors.Is(err, boom) {
		t.Fatalf("Create() error = %v, want boom", err)
	}
	if m.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", m.Count())
	}
}

func TestSession_ResetWizardClearsPass(t *testing.T) {
	m := newTestManager(t)
	s, _ := m.Create()

	s.Slots = []string{"10:00"}
	s.Appointments = []remote.Appointment{{ID: 1}}
	s.PendingPhone = "0541234567"

	s.Lock()
	s.ResetWizard()
	s.Unlock()

	if s.Slots != nil || s.Appointments != nil || s.PendingPhone != "" {
		t.Fatal("reset left cached state behind")
	}
	if _, pending := s.Confirm.Pending(); pending {
		t.Fatal("reset left a pending prompt")
	}
}
