package model

import "time"

// ProductLine — категория бытовой техники. Справочные данные, создаются админкой.
type ProductLine struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Appliance — единица техники, идентифицируется серийным номером.
type Appliance struct {
	ID            int64  `json:"id"`
	SerialNumber  string `json:"serial_number"`
	ModelNumber   string `json:"model_number"`
	Name          string `json:"name"`
	ProductLineID int64  `json:"product_line_id"`

	// Дополнительные поля для удобства (не из БД)
	ProductLine *ProductLine `json:"product_line,omitempty"`
}
