package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/repository/base"
	"go.uber.org/zap"
)

// trackingAttempts — сколько раз перегенерировать номер отслеживания при
// коллизии, прежде чем сдаться.
const trackingAttempts = 5

// defaultStatus — статус новой заявки, дальше его меняет админка.
const defaultStatus = "Pending"

// ApplianceStore — доступ к справочнику техники. Отсутствие записи — (nil, nil).
type ApplianceStore interface {
	GetBySerialNumber(ctx context.Context, serialNumber string) (*model.Appliance, error)
}

// PinCodeStore — доступ к обслуживаемым зонам и слотам.
type PinCodeStore interface {
	GetByCode(ctx context.Context, code string) (*model.PinCode, error)
	GetByID(ctx context.Context, id int64) (*model.PinCode, error)
}

// AppointmentStore — доступ к заявкам. Create обязан вернуть base.ErrDuplicate
// при нарушении уникальности номера отслеживания.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Appointment, error)
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]*model.Appointment, error)
	UpdateSchedule(ctx context.Context, appointment *model.Appointment) error
	SetCancelled(ctx context.Context, id int64) error
}

type BookingService struct {
	appliances   ApplianceStore
	pinCodes     PinCodeStore
	appointments AppointmentStore
	logger       *zap.Logger
}

func NewBookingService(
	appliances ApplianceStore,
	pinCodes PinCodeStore,
	appointments AppointmentStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		appliances:   appliances,
		pinCodes:     pinCodes,
		appointments: appointments,
		logger:       logger,
	}
}

// FindAppliance ищет прибор по серийному номеру без учёта регистра
func (s *BookingService) FindAppliance(ctx context.Context, serialNumber string) (*model.Appliance, error) {
	return s.appliances.GetBySerialNumber(ctx, strings.TrimSpace(serialNumber))
}

// FindPinCode ищет обслуживаемую зону по точному пин-коду
func (s *BookingService) FindPinCode(ctx context.Context, code string) (*model.PinCode, error) {
	return s.pinCodes.GetByCode(ctx, strings.TrimSpace(code))
}

// NewDraft начинает черновик заявки: прибор, пользователь и свежий номер
// отслеживания. Остальные поля заполняются по ходу диалога.
func (s *BookingService) NewDraft(user *model.User, appliance *model.Appliance) (*model.Appointment, error) {
	trackingNumber, err := model.GenTrackingNumber()
	if err != nil {
		return nil, err
	}

	return &model.Appointment{
		ApplianceID:    appliance.ID,
		Appliance:      appliance,
		UserID:         user.ID,
		TrackingNumber: trackingNumber,
		Status:         defaultStatus,
	}, nil
}

// SelectTimeSlot проставляет день и слот на заявке, перечитав зону из
// хранилища: клавиатура могла устареть, пока пользователь думал.
func (s *BookingService) SelectTimeSlot(ctx context.Context, appointment *model.Appointment, weekday model.Weekday, timeSlotID int64) error {
	pinCode, err := s.pinCodes.GetByID(ctx, appointment.PinCodeID)
	if err != nil {
		return fmt.Errorf("get pin code: %w", err)
	}
	if pinCode == nil {
		return ErrNoCoverage
	}

	appointment.PinCode = pinCode
	appointment.Weekday = weekday
	appointment.TimeSlotID = timeSlotID

	if err := appointment.ValidateWeekday(); err != nil {
		return err
	}
	if err := appointment.ValidateTimeSlot(); err != nil {
		return err
	}

	appointment.TimeSlot = pinCode.TimeSlotByID(timeSlotID)
	return nil
}

// Create сохраняет заявку. Коллизия номера отслеживания не выходит наружу:
// номер перегенерируется и вставка повторяется.
func (s *BookingService) Create(ctx context.Context, appointment *model.Appointment) error {
	for attempt := 0; attempt < trackingAttempts; attempt++ {
		err := s.appointments.Create(ctx, appointment)
		if err == nil {
			s.logger.Info("Appointment created",
				zap.Int64("appointment_id", appointment.ID),
				zap.Int64("user_id", appointment.UserID),
				zap.String("tracking_number", appointment.TrackingNumber),
			)
			return nil
		}

		if !errors.Is(err, base.ErrDuplicate) {
			return err
		}

		s.logger.Warn("Tracking number collision, regenerating",
			zap.String("tracking_number", appointment.TrackingNumber),
		)

		trackingNumber, genErr := model.GenTrackingNumber()
		if genErr != nil {
			return genErr
		}
		appointment.TrackingNumber = trackingNumber
	}

	return fmt.Errorf("create appointment: gave up after %d tracking number collisions", trackingAttempts)
}

// GetActiveByTracking ищет неотменённую заявку по номеру отслеживания
func (s *BookingService) GetActiveByTracking(ctx context.Context, trackingNumber string) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByTrackingNumber(ctx, strings.TrimSpace(trackingNumber))
	if err != nil {
		return nil, err
	}
	return appointment, s.attachPinCode(ctx, appointment)
}

// GetActiveByID ищет неотменённую заявку по ID
func (s *BookingService) GetActiveByID(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return appointment, s.attachPinCode(ctx, appointment)
}

// attachPinCode дочитывает зону со слотами: запрос заявки приносит пин-код
// без расписания, а клавиатура переноса строится по нему.
func (s *BookingService) attachPinCode(ctx context.Context, appointment *model.Appointment) error {
	if appointment == nil {
		return nil
	}

	pinCode, err := s.pinCodes.GetByID(ctx, appointment.PinCodeID)
	if err != nil {
		return fmt.Errorf("get pin code: %w", err)
	}
	if pinCode != nil {
		appointment.PinCode = pinCode
	}
	return nil
}

// ListActive возвращает все неотменённые заявки пользователя, новые первыми
func (s *BookingService) ListActive(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	return s.appointments.ListActiveByUser(ctx, userID)
}

// Reschedule переносит заявку на другой день/слот с той же валидацией,
// что и при создании.
func (s *BookingService) Reschedule(ctx context.Context, appointment *model.Appointment, weekday model.Weekday, timeSlotID int64) error {
	if err := s.SelectTimeSlot(ctx, appointment, weekday, timeSlotID); err != nil {
		return err
	}

	if err := s.appointments.UpdateSchedule(ctx, appointment); err != nil {
		return err
	}

	s.logger.Info("Appointment rescheduled",
		zap.Int64("appointment_id", appointment.ID),
		zap.String("weekday", string(weekday)),
		zap.Int64("time_slot_id", timeSlotID),
	)

	return nil
}

// Cancel выставляет флаг отмены. Повторная отмена не ошибка.
func (s *BookingService) Cancel(ctx context.Context, id int64) error {
	if err := s.appointments.SetCancelled(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Appointment cancelled", zap.Int64("appointment_id", id))
	return nil
}
