package handlers

import (
	"context"

	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/geocode"
	"github.com/devxpy/gea-telegram-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Client — подмножество методов *bot.Bot, используемое message handlers
type Client interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
}

// stepFunc — обработчик одного текстового шага диалога
type stepFunc func(ctx context.Context, msg *models.Message)

// Handlers обрабатывает команды и текстовые шаги диалогов
type Handlers struct {
	client   Client
	users    *service.UserService
	bookings *service.BookingService
	geocoder geocode.Geocoder
	state    *state.Manager
	logger   *zap.Logger

	// переходы текстовых шагов: состояние диалога -> обработчик
	textSteps map[state.DialogState]stepFunc
}

func New(
	users *service.UserService,
	bookings *service.BookingService,
	geocoder geocode.Geocoder,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	h := &Handlers{
		users:    users,
		bookings: bookings,
		geocoder: geocoder,
		state:    stateManager,
		logger:   logger,
	}

	h.textSteps = map[state.DialogState]stepFunc{
		state.StateRecvPhoneNumber:       h.stepRecvPhoneNumber,
		state.StateRecvEmail:             h.stepRecvEmail,
		state.StateRecvSerialNumber:      h.stepRecvSerialNumber,
		state.StateRecvLocation:          h.stepRecvLocation,
		state.StateRecvPinCode:           h.stepRecvPinCode,
		state.StateRecvReason:            h.stepRecvReason,
		state.StateRecvTimeSlot:          h.stepRemindTimeSlot,
		state.StateAwaitTrackingCheck:    h.stepAwaitTracking(modCheck),
		state.StateAwaitTrackingCancel:   h.stepAwaitTracking(modCancel),
		state.StateAwaitTrackingSchedule: h.stepAwaitTracking(modSchedule),
	}

	return h
}

// Bind привязывает транспортный клиент после создания бота
func (h *Handlers) Bind(client Client) {
	h.client = client
}

// HandleDefault принимает все апдейты, не попавшие в командные хендлеры:
// текстовые шаги активного диалога и всё прочее, чего бот не понимает.
func (h *Handlers) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	step, ok := h.textSteps[h.state.State(msg.From.ID)]
	if !ok {
		h.HandleUnknown(ctx, b, update)
		return
	}

	step(ctx, msg)
}

func (h *Handlers) send(ctx context.Context, chatID int64, text string) {
	h.sendParams(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

func (h *Handlers) sendParams(ctx context.Context, params *bot.SendMessageParams) *models.Message {
	msg, err := h.client.SendMessage(ctx, params)
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Any("chat_id", params.ChatID),
			zap.Error(err))
		return nil
	}
	return msg
}
