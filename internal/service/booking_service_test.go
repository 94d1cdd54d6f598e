package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/repository/base"
	"go.uber.org/zap"
)

type fakeApplianceStore struct {
	bySerial map[string]*model.Appliance
}

func (f *fakeApplianceStore) GetBySerialNumber(ctx context.Context, serialNumber string) (*model.Appliance, error) {
	return f.bySerial[serialNumber], nil
}

type fakePinCodeStore struct {
	byCode map[string]*model.PinCode
	byID   map[int64]*model.PinCode
}

func (f *fakePinCodeStore) GetByCode(ctx context.Context, code string) (*model.PinCode, error) {
	return f.byCode[code], nil
}

func (f *fakePinCodeStore) GetByID(ctx context.Context, id int64) (*model.PinCode, error) {
	return f.byID[id], nil
}

type fakeAppointmentStore struct {
	duplicates int
	created    []*model.Appointment
	cancelled  []int64
	updated    []*model.Appointment
}

func (f *fakeAppointmentStore) Create(ctx context.Context, appointment *model.Appointment) error {
	if f.duplicates > 0 {
		f.duplicates--
		return base.ErrDuplicate
	}
	appointment.ID = int64(len(f.created) + 1)
	f.created = append(f.created, appointment)
	return nil
}

func (f *fakeAppointmentStore) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Appointment, error) {
	for _, a := range f.created {
		if a.TrackingNumber == trackingNumber && !a.IsCancelled {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentStore) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	for _, a := range f.created {
		if a.ID == id && !a.IsCancelled {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentStore) ListActiveByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.created {
		if a.UserID == userID && !a.IsCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) UpdateSchedule(ctx context.Context, appointment *model.Appointment) error {
	f.updated = append(f.updated, appointment)
	return nil
}

func (f *fakeAppointmentStore) SetCancelled(ctx context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	for _, a := range f.created {
		if a.ID == id {
			a.IsCancelled = true
		}
	}
	return nil
}

func testPinCode() *model.PinCode {
	return &model.PinCode{
		ID:          1,
		PinCode:     "560001",
		WorkingDays: []model.Weekday{model.Monday, model.Tuesday},
		TimeSlots: []*model.TimeSlot{
			{
				ID:    1,
				Start: time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2000, 1, 1, 11, 0, 0, 0, time.UTC),
			},
		},
	}
}

func newBookingService(appointments *fakeAppointmentStore) *BookingService {
	pc := testPinCode()
	return NewBookingService(
		&fakeApplianceStore{bySerial: map[string]*model.Appliance{
			"GEA123": {ID: 5, SerialNumber: "GEA123", Name: "Washing Machine"},
		}},
		&fakePinCodeStore{
			byCode: map[string]*model.PinCode{"560001": pc},
			byID:   map[int64]*model.PinCode{1: pc},
		},
		appointments,
		zap.NewNop(),
	)
}

func TestNewDraft(t *testing.T) {
	svc := newBookingService(&fakeAppointmentStore{})

	user := &model.User{ID: 3}
	appliance := &model.Appliance{ID: 5, SerialNumber: "GEA123"}

	draft, err := svc.NewDraft(user, appliance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.UserID != 3 || draft.ApplianceID != 5 {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if draft.Status != "Pending" {
		t.Fatalf("expected status Pending, got %q", draft.Status)
	}
	if len(draft.TrackingNumber) != model.TrackingNumberLength {
		t.Fatalf("expected tracking number on draft, got %q", draft.TrackingNumber)
	}
}

func TestSelectTimeSlot(t *testing.T) {
	t.Run("valid choice", func(t *testing.T) {
		svc := newBookingService(&fakeAppointmentStore{})
		appointment := &model.Appointment{PinCodeID: 1}

		if err := svc.SelectTimeSlot(context.Background(), appointment, model.Monday, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appointment.Weekday != model.Monday || appointment.TimeSlotID != 1 {
			t.Fatalf("unexpected appointment: %+v", appointment)
		}
		if appointment.TimeSlot == nil {
			t.Fatal("expected time slot to be attached")
		}
	})

	t.Run("weekday outside working days", func(t *testing.T) {
		svc := newBookingService(&fakeAppointmentStore{})
		appointment := &model.Appointment{PinCodeID: 1}

		err := svc.SelectTimeSlot(context.Background(), appointment, model.Friday, 1)
		if !errors.Is(err, model.ErrInvalidWeekday) {
			t.Fatalf("expected ErrInvalidWeekday, got %v", err)
		}
	})

	t.Run("slot not linked to pin code", func(t *testing.T) {
		svc := newBookingService(&fakeAppointmentStore{})
		appointment := &model.Appointment{PinCodeID: 1}

		err := svc.SelectTimeSlot(context.Background(), appointment, model.Monday, 99)
		if !errors.Is(err, model.ErrInvalidTimeSlot) {
			t.Fatalf("expected ErrInvalidTimeSlot, got %v", err)
		}
	})

	t.Run("pin code disappeared", func(t *testing.T) {
		svc := newBookingService(&fakeAppointmentStore{})
		appointment := &model.Appointment{PinCodeID: 404}

		err := svc.SelectTimeSlot(context.Background(), appointment, model.Monday, 1)
		if !errors.Is(err, ErrNoCoverage) {
			t.Fatalf("expected ErrNoCoverage, got %v", err)
		}
	})
}

func TestCreateRetriesTrackingCollisions(t *testing.T) {
	store := &fakeAppointmentStore{duplicates: 2}
	svc := newBookingService(store)

	appointment := &model.Appointment{UserID: 3, TrackingNumber: "0000000000"}
	if err := svc.Create(context.Background(), appointment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.TrackingNumber == "0000000000" {
		t.Fatal("expected tracking number to be regenerated after collision")
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one stored appointment, got %d", len(store.created))
	}
}

func TestCreateGivesUpEventually(t *testing.T) {
	store := &fakeAppointmentStore{duplicates: 100}
	svc := newBookingService(store)

	appointment := &model.Appointment{UserID: 3, TrackingNumber: "0000000000"}
	if err := svc.Create(context.Background(), appointment); err == nil {
		t.Fatal("expected error after persistent collisions")
	}
}

func TestReschedule(t *testing.T) {
	store := &fakeAppointmentStore{}
	svc := newBookingService(store)

	appointment := &model.Appointment{ID: 9, PinCodeID: 1, Weekday: model.Monday, TimeSlotID: 1}

	t.Run("valid slot persists", func(t *testing.T) {
		if err := svc.Reschedule(context.Background(), appointment, model.Tuesday, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.updated) != 1 || store.updated[0].Weekday != model.Tuesday {
			t.Fatalf("expected schedule update, got %+v", store.updated)
		}
	})

	t.Run("invalid slot does not persist", func(t *testing.T) {
		err := svc.Reschedule(context.Background(), appointment, model.Sunday, 1)
		if !errors.Is(err, model.ErrInvalidWeekday) {
			t.Fatalf("expected ErrInvalidWeekday, got %v", err)
		}
		if len(store.updated) != 1 {
			t.Fatalf("expected no additional updates, got %d", len(store.updated))
		}
	})
}

func TestCancelIsIdempotent(t *testing.T) {
	store := &fakeAppointmentStore{}
	svc := newBookingService(store)

	appointment := &model.Appointment{UserID: 3, TrackingNumber: "1234567890"}
	if err := svc.Create(context.Background(), appointment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Cancel(context.Background(), appointment.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Cancel(context.Background(), appointment.ID); err != nil {
		t.Fatalf("expected second cancel to succeed, got %v", err)
	}

	got, err := svc.GetActiveByID(context.Background(), appointment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatal("expected cancelled appointment to be invisible")
	}
}

func TestGetActiveByTrackingTrimsInput(t *testing.T) {
	store := &fakeAppointmentStore{}
	svc := newBookingService(store)

	appointment := &model.Appointment{UserID: 3, TrackingNumber: "1234567890"}
	if err := svc.Create(context.Background(), appointment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetActiveByTracking(context.Background(), "  1234567890  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != appointment.ID {
		t.Fatalf("expected appointment back, got %+v", got)
	}
}
