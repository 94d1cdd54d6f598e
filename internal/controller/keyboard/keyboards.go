package keyboard

import (
	"github.com/devxpy/gea-telegram-bot/internal/controller/payload"
	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// BookingTimeSlots строит клавиатуру выбора слота для бронирования:
// декартово произведение рабочих дней зоны и её слотов, по кнопке в ряд.
func BookingTimeSlots(pinCode *model.PinCode) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, weekday := range pinCode.WorkingDays {
		for _, slot := range pinCode.TimeSlots {
			data := payload.SlotSelect{Weekday: weekday, TimeSlotID: slot.ID}.Encode()
			b.Row(Button(model.PrettyTimeSlot(weekday, slot), data))
		}
	}
	return b.Build()
}

// RescheduleTimeSlots — та же сетка, но под отдельным действием, чтобы выбор
// при переносе не перепутался с выбором при первичном бронировании.
func RescheduleTimeSlots(pinCode *model.PinCode, appointmentID int64) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, weekday := range pinCode.WorkingDays {
		for _, slot := range pinCode.TimeSlots {
			data := payload.ReslotSelect{
				AppointmentID: appointmentID,
				Weekday:       weekday,
				TimeSlotID:    slot.ID,
			}.Encode()
			b.Row(Button(model.PrettyTimeSlot(weekday, slot), data))
		}
	}
	return b.Build()
}

// AppointmentActions — кнопки под карточкой заявки в списке и подтверждении
func AppointmentActions(appointmentID int64) *models.InlineKeyboardMarkup {
	return NewBuilder().Row(
		Button("Cancel", payload.Link{Target: payload.LinkCancel, AppointmentID: appointmentID}.Encode()),
		Button("Check details", payload.Link{Target: payload.LinkCheck, AppointmentID: appointmentID}.Encode()),
		Button("Reschedule", payload.Link{Target: payload.LinkSchedule, AppointmentID: appointmentID}.Encode()),
	).Build()
}

// CheckActions — кнопки под полной карточкой /check (без Check details)
func CheckActions(appointmentID int64) *models.InlineKeyboardMarkup {
	return NewBuilder().Row(
		Button("Cancel", payload.Link{Target: payload.LinkCancel, AppointmentID: appointmentID}.Encode()),
		Button("Reschedule", payload.Link{Target: payload.LinkSchedule, AppointmentID: appointmentID}.Encode()),
	).Build()
}

// CancelConfirm — подтверждение отмены заявки
func CancelConfirm(appointmentID int64) *models.InlineKeyboardMarkup {
	return NewBuilder().Row(
		Button("Yes", payload.CancelConfirm{AppointmentID: appointmentID, Confirmed: true}.Encode()),
		Button("No", payload.CancelConfirm{AppointmentID: appointmentID, Confirmed: false}.Encode()),
	).Build()
}

// ShareContact — reply-клавиатура с кнопкой "поделиться контактом"
func ShareContact() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "Share Contact", RequestContact: true}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}
