package handlers

import (
	"context"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleList показывает все активные заявки пользователя
func (h *Handlers) HandleList(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	user, err := h.users.GetByTelegramID(ctx, msg.From.ID)
	if err != nil || user == nil {
		h.logger.Error("Failed to get user",
			zap.Int64("telegram_id", msg.From.ID),
			zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	appointments, err := h.bookings.ListActive(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list appointments",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if len(appointments) == 0 {
		h.send(ctx, msg.Chat.ID, "You haven't booked any appointments yet!\nUse /book to book one.")
		return
	}

	h.send(ctx, msg.Chat.ID, fmt.Sprintf("You have %d upcoming appointment(s) -", len(appointments)))

	for _, appointment := range appointments {
		h.sendParams(ctx, &bot.SendMessageParams{
			ChatID:      msg.Chat.ID,
			Text:        appointment.ShortDetail(),
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: keyboard.AppointmentActions(appointment.ID),
		})
	}
}
