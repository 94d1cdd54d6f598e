package model

import (
	"fmt"
	"time"
)

// Weekday — день недели в том виде, в котором он хранится в БД и в callback payload.
type Weekday string

const (
	Monday    Weekday = "0"
	Tuesday   Weekday = "1"
	Wednesday Weekday = "2"
	Thursday  Weekday = "3"
	Friday    Weekday = "4"
	Saturday  Weekday = "5"
	Sunday    Weekday = "6"
)

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Valid проверяет что значение является одним из семи дней недели.
func (w Weekday) Valid() bool {
	_, ok := weekdayNames[w]
	return ok
}

// Name возвращает английское название дня недели.
func (w Weekday) Name() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return string(w)
}

// TimeSlot — интервал времени, общий для нескольких пин-кодов.
// Комбинация (Start, End) уникальна.
type TimeSlot struct {
	ID    int64     `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Label форматирует интервал как "9 AM - 11 AM".
func (t *TimeSlot) Label() string {
	return fmt.Sprintf("%s - %s", t.Start.Format("3 PM"), t.End.Format("3 PM"))
}

// PinCode — обслуживаемая географическая зона с рабочими днями и слотами.
type PinCode struct {
	ID          int64       `json:"id"`
	PinCode     string      `json:"pin_code"`
	WorkingDays []Weekday   `json:"working_days"`
	TimeSlots   []*TimeSlot `json:"time_slots,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AllowsWeekday проверяет что день входит в рабочие дни зоны.
func (p *PinCode) AllowsWeekday(w Weekday) bool {
	for _, day := range p.WorkingDays {
		if day == w {
			return true
		}
	}
	return false
}

// TimeSlotByID возвращает слот зоны по ID или nil.
func (p *PinCode) TimeSlotByID(id int64) *TimeSlot {
	for _, slot := range p.TimeSlots {
		if slot.ID == id {
			return slot
		}
	}
	return nil
}

// PrettyTimeSlot форматирует выбор слота как "Monday, 9 AM - 11 AM".
func PrettyTimeSlot(w Weekday, slot *TimeSlot) string {
	return fmt.Sprintf("%s, %s", w.Name(), slot.Label())
}
