package model

import "time"

// User — пользователь бота. Username хранит Telegram ID в строковом виде
// и уникален, сам Telegram ID дублируется числом для запросов.
type User struct {
	ID          int64     `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// Registered — регистрация завершена когда указаны и телефон, и email.
func (u *User) Registered() bool {
	return u.PhoneNumber != "" && u.Email != ""
}
