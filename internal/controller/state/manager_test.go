package state

import (
	"sync"
	"testing"

	"github.com/devxpy/gea-telegram-bot/internal/model"
)

func TestManagerState(t *testing.T) {
	m := NewManager()

	if got := m.State(1); got != StateNone {
		t.Fatalf("expected StateNone for unknown user, got %v", got)
	}

	m.SetState(1, StateRecvPhoneNumber)
	if got := m.State(1); got != StateRecvPhoneNumber {
		t.Fatalf("expected StateRecvPhoneNumber, got %v", got)
	}

	// чужой диалог не затронут
	if got := m.State(2); got != StateNone {
		t.Fatalf("expected StateNone for another user, got %v", got)
	}

	m.SetState(1, StateNone)
	if got := m.State(1); got != StateNone {
		t.Fatalf("expected StateNone after reset, got %v", got)
	}
}

func TestManagerDrafts(t *testing.T) {
	m := NewManager()

	if m.DraftUser(1) != nil || m.DraftAppointment(1) != nil {
		t.Fatal("expected no drafts for unknown user")
	}

	user := &model.User{TelegramID: 1, FirstName: "Dev"}
	m.SetDraftUser(1, user)

	appointment := &model.Appointment{TrackingNumber: "0123456789"}
	m.SetDraftAppointment(1, appointment)

	if got := m.DraftUser(1); got != user {
		t.Fatalf("expected same draft user back, got %+v", got)
	}
	if got := m.DraftAppointment(1); got != appointment {
		t.Fatalf("expected same draft appointment back, got %+v", got)
	}

	m.Clear(1)
	if m.State(1) != StateNone || m.DraftUser(1) != nil || m.DraftAppointment(1) != nil {
		t.Fatal("expected Clear to drop state and drafts")
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetState(id, StateRecvEmail)
			m.SetDraftUser(id, &model.User{TelegramID: id})
			_ = m.State(id)
			_ = m.DraftUser(id)
			m.Clear(id)
		}(int64(i % 5))
	}
	wg.Wait()
}

func TestDialogStateString(t *testing.T) {
	if StateRecvTimeSlot.String() != "recv_time_slot" {
		t.Fatalf("unexpected name: %q", StateRecvTimeSlot.String())
	}
	if DialogState(999).String() == "" {
		t.Fatal("expected non-empty name for unknown state")
	}
}
