package service

import "errors"

// Общие ошибки сервисного слоя
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNoCoverage         = errors.New("pin code is not serviceable")
)
