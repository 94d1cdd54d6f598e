package repository

import (
	"context"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplianceRepository struct {
	pool *pgxpool.Pool
}

func NewApplianceRepository(pool *pgxpool.Pool) *ApplianceRepository {
	return &ApplianceRepository{pool: pool}
}

// GetBySerialNumber получает прибор по серийному номеру (без учёта регистра)
func (r *ApplianceRepository) GetBySerialNumber(ctx context.Context, serialNumber string) (*model.Appliance, error) {
	query := `
		SELECT a.id, a.serial_number, a.model_number, a.name, a.product_line_id,
		       p.id, p.name, p.created_at
		FROM appliances a
		JOIN product_lines p ON p.id = a.product_line_id
		WHERE lower(a.serial_number) = lower($1)
	`

	var (
		appliance model.Appliance
		line      model.ProductLine
	)
	err := r.pool.QueryRow(ctx, query, serialNumber).Scan(
		&appliance.ID,
		&appliance.SerialNumber,
		&appliance.ModelNumber,
		&appliance.Name,
		&appliance.ProductLineID,
		&line.ID,
		&line.Name,
		&line.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Прибор не найден
		}
		return nil, fmt.Errorf("get appliance by serial number: %w", err)
	}

	appliance.ProductLine = &line
	return &appliance, nil
}
