package payload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/devxpy/gea-telegram-bot/internal/model"
)

// Wire-формат callback payload: "<action>:<field>:...". Action — целый первый
// токен из закрытой таблицы, декодер требует точного совпадения действия и
// количества полей, поэтому одно действие не может оказаться префиксом другого.

var ErrInvalid = errors.New("invalid callback payload")

const (
	actionSlot          = "slot"   // slot:<weekday>:<time_slot_id>
	actionReslot        = "reslot" // reslot:<appointment_id>:<weekday>:<time_slot_id>
	actionCancelConfirm = "cxl"    // cxl:<yes|no>:<appointment_id>
	actionLink          = "link"   // link:<target>:<appointment_id>
)

// LinkTarget — действие, открываемое кнопкой под карточкой заявки.
type LinkTarget string

const (
	LinkCheck    LinkTarget = "check"
	LinkCancel   LinkTarget = "cancel"
	LinkSchedule LinkTarget = "schedule"
)

var linkTargets = map[LinkTarget]bool{
	LinkCheck:    true,
	LinkCancel:   true,
	LinkSchedule: true,
}

// SlotSelect — выбор слота в диалоге бронирования.
type SlotSelect struct {
	Weekday    model.Weekday
	TimeSlotID int64
}

func (p SlotSelect) Encode() string {
	return join(actionSlot, string(p.Weekday), formatID(p.TimeSlotID))
}

// ReslotSelect — выбор нового слота при переносе заявки.
type ReslotSelect struct {
	AppointmentID int64
	Weekday       model.Weekday
	TimeSlotID    int64
}

func (p ReslotSelect) Encode() string {
	return join(actionReslot, formatID(p.AppointmentID), string(p.Weekday), formatID(p.TimeSlotID))
}

// CancelConfirm — ответ на вопрос об отмене заявки.
type CancelConfirm struct {
	AppointmentID int64
	Confirmed     bool
}

func (p CancelConfirm) Encode() string {
	answer := "no"
	if p.Confirmed {
		answer = "yes"
	}
	return join(actionCancelConfirm, answer, formatID(p.AppointmentID))
}

// Link — переход к check/cancel/schedule по кнопке под карточкой.
type Link struct {
	Target        LinkTarget
	AppointmentID int64
}

func (p Link) Encode() string {
	return join(actionLink, string(p.Target), formatID(p.AppointmentID))
}

// Decode разбирает payload в одну из типизированных структур выше.
func Decode(data string) (interface{}, error) {
	parts := strings.Split(data, ":")

	switch parts[0] {
	case actionSlot:
		if len(parts) != 3 {
			return nil, ErrInvalid
		}
		weekday := model.Weekday(parts[1])
		if !weekday.Valid() {
			return nil, ErrInvalid
		}
		timeSlotID, err := parseID(parts[2])
		if err != nil {
			return nil, err
		}
		return SlotSelect{Weekday: weekday, TimeSlotID: timeSlotID}, nil

	case actionReslot:
		if len(parts) != 4 {
			return nil, ErrInvalid
		}
		appointmentID, err := parseID(parts[1])
		if err != nil {
			return nil, err
		}
		weekday := model.Weekday(parts[2])
		if !weekday.Valid() {
			return nil, ErrInvalid
		}
		timeSlotID, err := parseID(parts[3])
		if err != nil {
			return nil, err
		}
		return ReslotSelect{AppointmentID: appointmentID, Weekday: weekday, TimeSlotID: timeSlotID}, nil

	case actionCancelConfirm:
		if len(parts) != 3 {
			return nil, ErrInvalid
		}
		var confirmed bool
		switch parts[1] {
		case "yes":
			confirmed = true
		case "no":
			confirmed = false
		default:
			return nil, ErrInvalid
		}
		appointmentID, err := parseID(parts[2])
		if err != nil {
			return nil, err
		}
		return CancelConfirm{AppointmentID: appointmentID, Confirmed: confirmed}, nil

	case actionLink:
		if len(parts) != 3 {
			return nil, ErrInvalid
		}
		target := LinkTarget(parts[1])
		if !linkTargets[target] {
			return nil, ErrInvalid
		}
		appointmentID, err := parseID(parts[2])
		if err != nil {
			return nil, err
		}
		return Link{Target: target, AppointmentID: appointmentID}, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalid, parts[0])
	}
}

func join(parts ...string) string {
	return strings.Join(parts, ":")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalid
	}
	return id, nil
}
