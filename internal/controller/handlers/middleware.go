package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recover перехватывает панику в любом хендлере, чтобы одна сломанная
// команда не роняла весь цикл обработки апдейтов.
func (h *Handlers) Recover(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			requestID := uuid.NewString()
			h.logger.Error("Panic in update handler",
				zap.String("request_id", requestID),
				zap.Any("panic", r),
				zap.Stack("stack"))

			if update.Message != nil {
				h.send(ctx, update.Message.Chat.ID, "Sorry, something went wrong. Please try again later.")
			}
		}()

		next(ctx, b, update)
	}
}

// AuthGate пропускает команду только для зарегистрированных пользователей
func (h *Handlers) AuthGate(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		msg := update.Message
		if msg == nil || msg.From == nil {
			return
		}

		user, err := h.users.GetByTelegramID(ctx, msg.From.ID)
		if err != nil {
			h.logger.Error("Failed to get user",
				zap.Int64("telegram_id", msg.From.ID),
				zap.Error(err))
			h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
			return
		}

		if user == nil || !user.Registered() {
			h.send(ctx, msg.Chat.ID, "You aren't registered with us!\nType in /start to register.")
			return
		}

		next(ctx, b, update)
	}
}
