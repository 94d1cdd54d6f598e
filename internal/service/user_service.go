package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"
)

// UserStore — доступ к записям пользователей. Отсутствие записи — (nil, nil).
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

type UserService struct {
	users       UserStore
	validate    *validator.Validate
	phoneRegion string
	logger      *zap.Logger
}

func NewUserService(users UserStore, phoneRegion string, logger *zap.Logger) *UserService {
	return &UserService{
		users:       users,
		validate:    validator.New(),
		phoneRegion: phoneRegion,
		logger:      logger,
	}
}

// Ensure возвращает пользователя по Telegram identity, создавая запись при
// первом контакте. Username — строковый Telegram ID, уникален в БД.
func (s *UserService) Ensure(ctx context.Context, telegramID int64, firstName, lastName string) (*model.User, error) {
	username := strconv.FormatInt(telegramID, 10)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByUsername(ctx, strconv.FormatInt(telegramID, 10))
}

// NormalizePhoneNumber валидирует номер и приводит его к международному формату.
func (s *UserService) NormalizePhoneNumber(raw string) (string, error) {
	number, err := phonenumbers.Parse(strings.TrimSpace(raw), s.phoneRegion)
	if err != nil {
		return "", ErrInvalidPhoneNumber
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidPhoneNumber
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL), nil
}

// ValidateEmail проверяет синтаксис email адреса.
func (s *UserService) ValidateEmail(email string) error {
	if err := s.validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// SaveContact сохраняет заполненные телефон и email пользователя.
func (s *UserService) SaveContact(ctx context.Context, user *model.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User completed registration",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", user.TelegramID),
	)

	return nil
}
