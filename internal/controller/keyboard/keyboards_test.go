package keyboard

import (
	"testing"
	"time"

	"github.com/devxpy/gea-telegram-bot/internal/model"
)

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

func TestBookingTimeSlots(t *testing.T) {
	markup := BookingTimeSlots(testPinCode())

	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected one row per weekday/slot pair, got %d", len(markup.InlineKeyboard))
	}

	first := markup.InlineKeyboard[0][0]
	if first.Text != "Monday, 9 AM - 11 AM" {
		t.Fatalf("unexpected button label: %q", first.Text)
	}
	if first.CallbackData != "slot:0:1" {
		t.Fatalf("unexpected callback data: %q", first.CallbackData)
	}

	second := markup.InlineKeyboard[1][0]
	if second.Text != "Tuesday, 9 AM - 11 AM" {
		t.Fatalf("unexpected button label: %q", second.Text)
	}
	if second.CallbackData != "slot:1:1" {
		t.Fatalf("unexpected callback data: %q", second.CallbackData)
	}
}

func TestRescheduleTimeSlots(t *testing.T) {
	markup := RescheduleTimeSlots(testPinCode(), 42)

	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected two rows, got %d", len(markup.InlineKeyboard))
	}
	if got := markup.InlineKeyboard[0][0].CallbackData; got != "reslot:42:0:1" {
		t.Fatalf("unexpected callback data: %q", got)
	}
}

func TestActionKeyboards(t *testing.T) {
	actions := AppointmentActions(7)
	if len(actions.InlineKeyboard) != 1 || len(actions.InlineKeyboard[0]) != 3 {
		t.Fatalf("expected a single row of three buttons, got %+v", actions.InlineKeyboard)
	}
	if got := actions.InlineKeyboard[0][0].CallbackData; got != "link:cancel:7" {
		t.Fatalf("unexpected callback data: %q", got)
	}

	check := CheckActions(7)
	if len(check.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected two buttons, got %+v", check.InlineKeyboard)
	}

	confirm := CancelConfirm(7)
	if got := confirm.InlineKeyboard[0][0].CallbackData; got != "cxl:yes:7" {
		t.Fatalf("unexpected callback data: %q", got)
	}
	if got := confirm.InlineKeyboard[0][1].CallbackData; got != "cxl:no:7" {
		t.Fatalf("unexpected callback data: %q", got)
	}
}
