package handlers

import (
	"context"
	"strings"

	"github.com/devxpy/gea-telegram-bot/internal/controller/callbacks"
	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// modTarget — действие над существующей заявкой
type modTarget int

const (
	modCheck modTarget = iota
	modCancel
	modSchedule
)

var awaitStates = map[modTarget]state.DialogState{
	modCheck:    state.StateAwaitTrackingCheck,
	modCancel:   state.StateAwaitTrackingCancel,
	modSchedule: state.StateAwaitTrackingSchedule,
}

// HandleCheck — /check [Tracking No.]
func (h *Handlers) HandleCheck(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleModification(ctx, update, modCheck)
}

// HandleCancel — /cancel [Tracking No.]
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleModification(ctx, update, modCancel)
}

// HandleSchedule — /schedule [Tracking No.]
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleModification(ctx, update, modSchedule)
}

// handleModification разбирает встроенный Tracking No. или запрашивает его отдельным шагом
func (h *Handlers) handleModification(ctx context.Context, update *models.Update, target modTarget) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	fields := strings.Fields(msg.Text)
	if len(fields) > 1 {
		h.resolveAndRun(ctx, msg, target, fields[1])
		return
	}

	h.state.SetState(msg.From.ID, awaitStates[target])
	h.send(ctx, msg.Chat.ID, "Please enter the Tracking No. of your appointment.")
}

// stepAwaitTracking строит текстовый шаг ожидания Tracking No. для заданного действия
func (h *Handlers) stepAwaitTracking(target modTarget) stepFunc {
	return func(ctx context.Context, msg *models.Message) {
		h.resolveAndRun(ctx, msg, target, msg.Text)
	}
}

// resolveAndRun находит заявку по Tracking No. и запускает действие над ней.
// Неверный номер оставляет пользователя на шаге ввода.
func (h *Handlers) resolveAndRun(ctx context.Context, msg *models.Message, target modTarget, trackingNumber string) {
	appointment, err := h.bookings.GetActiveByTracking(ctx, trackingNumber)
	if err != nil {
		h.logger.Error("Failed to look up appointment",
			zap.String("tracking_number", trackingNumber),
			zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if appointment == nil {
		h.state.SetState(msg.From.ID, awaitStates[target])
		h.send(ctx, msg.Chat.ID, "You entered an invalid Tracking No.\nPlease try again.")
		return
	}

	h.state.Clear(msg.From.ID)
	h.runModification(ctx, msg.Chat.ID, target, appointment)
}

func (h *Handlers) runModification(ctx context.Context, chatID int64, target modTarget, appointment *model.Appointment) {
	switch target {
	case modCheck:
		callbacks.ShowDetails(ctx, h.client, h.logger, chatID, appointment)
	case modCancel:
		callbacks.ShowCancelPrompt(ctx, h.client, h.logger, chatID, appointment)
	case modSchedule:
		callbacks.ShowReschedulePrompt(ctx, h.client, h.logger, chatID, appointment)
	}
}
