package repository

import (
	"context"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// selectAppointment — общая часть запросов чтения: заявка вместе с прибором,
// линейкой, слотом и пин-кодом.
const selectAppointment = `
	SELECT ap.id, ap.appliance_id, ap.user_id, ap.pin_code_id, ap.time_slot_id,
	       ap.weekday, ap.address, ap.place_id, ap.reason, ap.tracking_number,
	       ap.status, ap.is_cancelled, ap.created_at,
	       a.serial_number, a.model_number, a.name, a.product_line_id,
	       p.name,
	       t.start_time, t.end_time,
	       pc.pin_code, pc.working_days
	FROM appointments ap
	JOIN appliances a ON a.id = ap.appliance_id
	JOIN product_lines p ON p.id = a.product_line_id
	JOIN time_slots t ON t.id = ap.time_slot_id
	JOIN pin_codes pc ON pc.id = ap.pin_code_id
`

// Create создаёт заявку. При коллизии номера отслеживания возвращает base.ErrDuplicate.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments
			(appliance_id, user_id, pin_code_id, time_slot_id, weekday,
			 address, place_id, reason, tracking_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		appointment.ApplianceID,
		appointment.UserID,
		appointment.PinCodeID,
		appointment.TimeSlotID,
		string(appointment.Weekday),
		appointment.Address,
		appointment.PlaceID,
		appointment.Reason,
		appointment.TrackingNumber,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create appointment: %w", base.ErrDuplicate)
		}
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// GetByTrackingNumber получает активную заявку по номеру отслеживания (без учёта регистра)
func (r *AppointmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Appointment, error) {
	query := selectAppointment + `
		WHERE lower(ap.tracking_number) = lower($1) AND ap.is_cancelled = false
	`
	return r.get(ctx, query, trackingNumber)
}

// GetByID получает активную заявку по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := selectAppointment + `
		WHERE ap.id = $1 AND ap.is_cancelled = false
	`
	return r.get(ctx, query, id)
}

func (r *AppointmentRepository) get(ctx context.Context, query string, arg interface{}) (*model.Appointment, error) {
	appointment, err := scanAppointment(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Заявка не найдена или отменена
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appointment, nil
}

// ListActiveByUser получает все неотменённые заявки пользователя, новые первыми
func (r *AppointmentRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	query := selectAppointment + `
		WHERE ap.user_id = $1 AND ap.is_cancelled = false
		ORDER BY ap.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}

// UpdateSchedule переносит заявку на другой день/слот
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET weekday = $1, time_slot_id = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, string(appointment.Weekday), appointment.TimeSlotID, appointment.ID)
	if err != nil {
		return fmt.Errorf("update appointment schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

// SetCancelled выставляет флаг отмены. Повторный вызов безопасен.
func (r *AppointmentRepository) SetCancelled(ctx context.Context, id int64) error {
	query := `
		UPDATE appointments
		SET is_cancelled = true
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}

	return nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var (
		appointment model.Appointment
		appliance   model.Appliance
		line        model.ProductLine
		slot        model.TimeSlot
		pinCode     model.PinCode
		weekday     string
		start, end  pgtype.Time
		days        []string
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.ApplianceID,
		&appointment.UserID,
		&appointment.PinCodeID,
		&appointment.TimeSlotID,
		&weekday,
		&appointment.Address,
		&appointment.PlaceID,
		&appointment.Reason,
		&appointment.TrackingNumber,
		&appointment.Status,
		&appointment.IsCancelled,
		&appointment.CreatedAt,
		&appliance.SerialNumber,
		&appliance.ModelNumber,
		&appliance.Name,
		&appliance.ProductLineID,
		&line.Name,
		&start,
		&end,
		&pinCode.PinCode,
		&days,
	)
	if err != nil {
		return nil, err
	}

	appointment.Weekday = model.Weekday(weekday)

	appliance.ID = appointment.ApplianceID
	line.ID = appliance.ProductLineID
	appliance.ProductLine = &line
	appointment.Appliance = &appliance

	slot.ID = appointment.TimeSlotID
	slot.Start = timeOfDay(start)
	slot.End = timeOfDay(end)
	appointment.TimeSlot = &slot

	pinCode.ID = appointment.PinCodeID
	for _, day := range days {
		pinCode.WorkingDays = append(pinCode.WorkingDays, model.Weekday(day))
	}
	appointment.PinCode = &pinCode

	return &appointment, nil
}
