package callbacks

import (
	"context"

	"github.com/devxpy/gea-telegram-bot/internal/controller/payload"
	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Client — подмножество методов *bot.Bot, используемое callback handlers
type Client interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// Handler обрабатывает нажатия inline кнопок
type Handler struct {
	client   Client
	users    *service.UserService
	bookings *service.BookingService
	state    *state.Manager
	logger   *zap.Logger
}

func New(
	users *service.UserService,
	bookings *service.BookingService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:    users,
		bookings: bookings,
		state:    stateManager,
		logger:   logger,
	}
}

// Bind привязывает транспортный клиент после создания бота
func (c *Handler) Bind(client Client) {
	c.client = client
}

// HandleCallbackQuery — единая точка входа для всех callback query.
// Payload декодируется в типизированное действие и уходит в свой обработчик.
func (c *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	decoded, err := payload.Decode(callback.Data)
	if err != nil {
		// устаревшая или чужая кнопка: молча подтверждаем
		c.logger.Warn("Unroutable callback payload",
			zap.String("data", callback.Data),
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err))
		c.answer(ctx, callback.ID, "")
		return
	}

	c.logger.Info("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID))

	switch p := decoded.(type) {
	case payload.SlotSelect:
		c.handleSlotSelect(ctx, callback, p)
	case payload.ReslotSelect:
		c.handleReslotSelect(ctx, callback, p)
	case payload.CancelConfirm:
		c.handleCancelConfirm(ctx, callback, p)
	case payload.Link:
		c.handleLink(ctx, callback, p)
	}
}

// requireRegistered — auth gate для кнопок: та же проверка, что и для команд
func (c *Handler) requireRegistered(ctx context.Context, callback *models.CallbackQuery) (*model.User, bool) {
	user, err := c.users.GetByTelegramID(ctx, callback.From.ID)
	if err != nil {
		c.logger.Error("Failed to get user",
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err))
		c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
		return nil, false
	}

	if user == nil || !user.Registered() {
		if msg := messageFrom(callback); msg != nil {
			c.send(ctx, msg.Chat.ID, "You aren't registered with us!\nType in /start to register.")
		}
		c.answer(ctx, callback.ID, "")
		return nil, false
	}

	return user, true
}

// answer подтверждает callback query (без alert)
func (c *Handler) answer(ctx context.Context, callbackID, text string) {
	_, err := c.client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
	if err != nil {
		c.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

// answerAlert подтверждает callback query всплывающим окном
func (c *Handler) answerAlert(ctx context.Context, callbackID, text string) {
	_, err := c.client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
	if err != nil {
		c.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

func (c *Handler) send(ctx context.Context, chatID int64, text string) {
	_, err := c.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		c.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// messageFrom извлекает сообщение из callback query
func messageFrom(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}
