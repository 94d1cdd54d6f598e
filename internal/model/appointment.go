package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// TrackingNumberLength — длина номера отслеживания, показываемого пользователю.
const TrackingNumberLength = 10

var (
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrInvalidWeekday  = errors.New("invalid week day")
)

// Appointment — заявка на сервисный визит. Никогда не удаляется,
// отмена выставляет флаг IsCancelled.
type Appointment struct {
	ID             int64     `json:"id"`
	ApplianceID    int64     `json:"appliance_id"`
	UserID         int64     `json:"user_id"`
	PinCodeID      int64     `json:"pin_code_id"`
	TimeSlotID     int64     `json:"time_slot_id"`
	Weekday        Weekday   `json:"weekday"`
	Address        string    `json:"address"`
	PlaceID        string    `json:"place_id"`
	Reason         string    `json:"reason"`
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	IsCancelled    bool      `json:"is_cancelled"`
	CreatedAt      time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Appliance *Appliance `json:"appliance,omitempty"`
	PinCode   *PinCode   `json:"pin_code,omitempty"`
	TimeSlot  *TimeSlot  `json:"time_slot,omitempty"`
}

// GenTrackingNumber генерирует 10 случайных десятичных цифр из
// криптографически стойкого источника. Уникальность обеспечивает БД.
func GenTrackingNumber() (string, error) {
	digits := make([]byte, 0, TrackingNumberLength)
	for i := 0; i < TrackingNumberLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate tracking number: %w", err)
		}
		digits = append(digits, byte('0'+n.Int64()))
	}
	return string(digits), nil
}

// ValidateWeekday проверяет что день входит в рабочие дни пин-кода.
func (a *Appointment) ValidateWeekday() error {
	if a.PinCode == nil || !a.PinCode.AllowsWeekday(a.Weekday) {
		return ErrInvalidWeekday
	}
	return nil
}

// ValidateTimeSlot проверяет что слот привязан к пин-коду.
func (a *Appointment) ValidateTimeSlot() error {
	if a.PinCode == nil || a.PinCode.TimeSlotByID(a.TimeSlotID) == nil {
		return ErrInvalidTimeSlot
	}
	return nil
}

// ShortDetail — краткая карточка для списка (Markdown).
func (a *Appointment) ShortDetail() string {
	return fmt.Sprintf(
		"Appointment for %s\n\n"+
			"Serial Number ➙ %s\n"+
			"Time Slot ➙ %s\n"+
			"Tracking Number ➙ `%s`",
		a.Appliance.ProductLine.Name,
		a.Appliance.SerialNumber,
		PrettyTimeSlot(a.Weekday, a.TimeSlot),
		a.TrackingNumber,
	)
}

// FullDetail — полная карточка для /check (Markdown).
func (a *Appointment) FullDetail() string {
	return fmt.Sprintf(
		"Appointment for %s\n\n"+
			"Status ➙ %s\n"+
			"Time of booking ➙ %s\n"+
			"Serial No. ➙ %s\n"+
			"Model No. ➙ %s\n"+
			"Pin Code ➙ %s\n"+
			"Address ➙ %s\n"+
			"Time Slot ➙ %s\n"+
			"Reason ➙ %s\n"+
			"Tracking No. ➙ `%s`",
		a.Appliance.ProductLine.Name,
		a.Status,
		a.CreatedAt.Format("Mon January 02 2006 3:04 PM"),
		a.Appliance.SerialNumber,
		a.Appliance.ModelNumber,
		a.PinCode.PinCode,
		a.Address,
		PrettyTimeSlot(a.Weekday, a.TimeSlot),
		a.Reason,
		a.TrackingNumber,
	)
}
