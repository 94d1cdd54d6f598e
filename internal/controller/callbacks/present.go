package callbacks

import (
	"context"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/controller/keyboard"
	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Sender — минимальный транспорт для отправки карточек записей
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// ShowDetails отправляет полную карточку записи
func ShowDetails(ctx context.Context, sender Sender, logger *zap.Logger, chatID int64, appointment *model.Appointment) {
	_, err := sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        appointment.FullDetail(),
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: keyboard.CheckActions(appointment.ID),
	})
	if err != nil {
		logger.Error("Failed to send appointment details",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// ShowCancelPrompt запрашивает подтверждение отмены записи
func ShowCancelPrompt(ctx context.Context, sender Sender, logger *zap.Logger, chatID int64, appointment *model.Appointment) {
	text := fmt.Sprintf(
		"Are you sure you want to cancel the appointment scheduled for %s?",
		model.PrettyTimeSlot(appointment.Weekday, appointment.TimeSlot),
	)
	_, err := sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard.CancelConfirm(appointment.ID),
	})
	if err != nil {
		logger.Error("Failed to send cancel prompt",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// ShowReschedulePrompt показывает сетку слотов для переноса записи
func ShowReschedulePrompt(ctx context.Context, sender Sender, logger *zap.Logger, chatID int64, appointment *model.Appointment) {
	_, err := sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Please choose a new time slot for your appointment.",
		ReplyMarkup: keyboard.RescheduleTimeSlots(appointment.PinCode, appointment.ID),
	})
	if err != nil {
		logger.Error("Failed to send reschedule prompt",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
