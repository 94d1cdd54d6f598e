package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PinCodeRepository struct {
	pool *pgxpool.Pool
}

func NewPinCodeRepository(pool *pgxpool.Pool) *PinCodeRepository {
	return &PinCodeRepository{pool: pool}
}

// GetByCode получает зону по пин-коду вместе с рабочими днями и слотами
func (r *PinCodeRepository) GetByCode(ctx context.Context, code string) (*model.PinCode, error) {
	query := `
		SELECT id, pin_code, working_days, created_at
		FROM pin_codes
		WHERE pin_code = $1
	`
	return r.get(ctx, query, code)
}

// GetByID получает зону по внутреннему ID вместе с рабочими днями и слотами
func (r *PinCodeRepository) GetByID(ctx context.Context, id int64) (*model.PinCode, error) {
	query := `
		SELECT id, pin_code, working_days, created_at
		FROM pin_codes
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

func (r *PinCodeRepository) get(ctx context.Context, query string, arg interface{}) (*model.PinCode, error) {
	var (
		pinCode model.PinCode
		days    []string
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&pinCode.ID,
		&pinCode.PinCode,
		&days,
		&pinCode.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Зона не найдена
		}
		return nil, fmt.Errorf("get pin code: %w", err)
	}

	for _, day := range days {
		pinCode.WorkingDays = append(pinCode.WorkingDays, model.Weekday(day))
	}

	slots, err := r.timeSlots(ctx, pinCode.ID)
	if err != nil {
		return nil, err
	}
	pinCode.TimeSlots = slots

	return &pinCode, nil
}

// timeSlots получает все слоты, привязанные к зоне
func (r *PinCodeRepository) timeSlots(ctx context.Context, pinCodeID int64) ([]*model.TimeSlot, error) {
	query := `
		SELECT t.id, t.start_time, t.end_time
		FROM time_slots t
		JOIN pin_code_time_slots pt ON pt.time_slot_id = t.id
		WHERE pt.pin_code_id = $1
		ORDER BY t.start_time, t.end_time
	`

	rows, err := r.pool.Query(ctx, query, pinCodeID)
	if err != nil {
		return nil, fmt.Errorf("get pin code time slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.TimeSlot
	for rows.Next() {
		var (
			slot       model.TimeSlot
			start, end pgtype.Time
		)
		if err := rows.Scan(&slot.ID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		slot.Start = timeOfDay(start)
		slot.End = timeOfDay(end)
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time slots: %w", err)
	}

	return slots, nil
}

// timeOfDay переводит pgtype.Time (микросекунды с полуночи) в time.Time
func timeOfDay(t pgtype.Time) time.Time {
	midnight := time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(t.Microseconds) * time.Microsecond)
}
