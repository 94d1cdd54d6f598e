package state

import "github.com/devxpy/gea-telegram-bot/internal/model"

// DialogState — типизированное состояние диалога пользователя
type DialogState int

const (
	StateNone DialogState = iota

	// Состояния регистрации
	StateRecvPhoneNumber
	StateRecvEmail

	// Состояния бронирования
	StateRecvSerialNumber
	StateRecvLocation
	StateRecvPinCode
	StateRecvReason
	StateRecvTimeSlot

	// Ожидание номера отслеживания для команд модификации
	StateAwaitTrackingCheck
	StateAwaitTrackingCancel
	StateAwaitTrackingSchedule
)

var stateNames = map[DialogState]string{
	StateNone:                  "none",
	StateRecvPhoneNumber:       "recv_phone_number",
	StateRecvEmail:             "recv_email",
	StateRecvSerialNumber:      "recv_serial_number",
	StateRecvLocation:          "recv_location",
	StateRecvPinCode:           "recv_pincode",
	StateRecvReason:            "recv_reason",
	StateRecvTimeSlot:          "recv_time_slot",
	StateAwaitTrackingCheck:    "await_tracking_check",
	StateAwaitTrackingCancel:   "await_tracking_cancel",
	StateAwaitTrackingSchedule: "await_tracking_schedule",
}

func (s DialogState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Dialog держит черновики одного незавершённого диалога.
// Данные живут только в памяти процесса и теряются при рестарте.
type Dialog struct {
	State            DialogState
	DraftUser        *model.User
	DraftAppointment *model.Appointment
}
