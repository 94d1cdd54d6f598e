package model

import (
	"errors"
	"testing"
	"time"
)

func slotAt(id int64, startHour, endHour int) *TimeSlot {
	return &TimeSlot{
		ID:    id,
		Start: time.Date(2000, 1, 1, startHour, 0, 0, 0, time.UTC),
		End:   time.Date(2000, 1, 1, endHour, 0, 0, 0, time.UTC),
	}
}

func TestGenTrackingNumber(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		number, err := GenTrackingNumber()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(number) != TrackingNumberLength {
			t.Fatalf("expected %d digits, got %q", TrackingNumberLength, number)
		}
		for _, r := range number {
			if r < '0' || r > '9' {
				t.Fatalf("expected only digits, got %q", number)
			}
		}
		seen[number] = true
	}

	if len(seen) < 2 {
		t.Fatalf("expected distinct numbers across calls, got %d unique of 50", len(seen))
	}
}

func TestAppointmentValidation(t *testing.T) {
	pinCode := &PinCode{
		ID:          1,
		PinCode:     "560001",
		WorkingDays: []Weekday{Monday, Tuesday},
		TimeSlots:   []*TimeSlot{slotAt(1, 9, 11)},
	}

	t.Run("valid weekday and slot", func(t *testing.T) {
		appointment := &Appointment{Weekday: Monday, TimeSlotID: 1, PinCode: pinCode}
		if err := appointment.ValidateWeekday(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := appointment.ValidateTimeSlot(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("weekday outside working days", func(t *testing.T) {
		appointment := &Appointment{Weekday: Thursday, TimeSlotID: 1, PinCode: pinCode}
		if err := appointment.ValidateWeekday(); !errors.Is(err, ErrInvalidWeekday) {
			t.Fatalf("expected ErrInvalidWeekday, got %v", err)
		}
	})

	t.Run("slot not linked to pin code", func(t *testing.T) {
		appointment := &Appointment{Weekday: Monday, TimeSlotID: 42, PinCode: pinCode}
		if err := appointment.ValidateTimeSlot(); !errors.Is(err, ErrInvalidTimeSlot) {
			t.Fatalf("expected ErrInvalidTimeSlot, got %v", err)
		}
	})

	t.Run("no pin code attached", func(t *testing.T) {
		appointment := &Appointment{Weekday: Monday, TimeSlotID: 1}
		if err := appointment.ValidateWeekday(); !errors.Is(err, ErrInvalidWeekday) {
			t.Fatalf("expected ErrInvalidWeekday, got %v", err)
		}
		if err := appointment.ValidateTimeSlot(); !errors.Is(err, ErrInvalidTimeSlot) {
			t.Fatalf("expected ErrInvalidTimeSlot, got %v", err)
		}
	})
}

func TestPrettyTimeSlot(t *testing.T) {
	got := PrettyTimeSlot(Monday, slotAt(1, 9, 11))
	if got != "Monday, 9 AM - 11 AM" {
		t.Fatalf("expected %q, got %q", "Monday, 9 AM - 11 AM", got)
	}

	got = PrettyTimeSlot(Saturday, slotAt(2, 14, 16))
	if got != "Saturday, 2 PM - 4 PM" {
		t.Fatalf("expected %q, got %q", "Saturday, 2 PM - 4 PM", got)
	}
}

func TestWeekday(t *testing.T) {
	if !Weekday("0").Valid() || !Weekday("6").Valid() {
		t.Fatal("expected 0 and 6 to be valid weekdays")
	}
	if Weekday("7").Valid() || Weekday("monday").Valid() || Weekday("").Valid() {
		t.Fatal("expected out-of-range values to be invalid")
	}
	if Monday.Name() != "Monday" || Sunday.Name() != "Sunday" {
		t.Fatalf("unexpected weekday names: %q, %q", Monday.Name(), Sunday.Name())
	}
}
