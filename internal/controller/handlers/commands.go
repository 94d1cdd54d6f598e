package handlers

import (
	"context"

	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = `↯ Getting started -
/start - Register yourself with us

↯ Appointments -
/book - Book an appointment
/list - View your appointments
/check <Tracking No.> - Check the status of an appointment
/cancel <Tracking No.> - Cancel an appointment
/schedule <Tracking No.> - Re-schedule an appointment

↯ Misc -
/help - Show this message
/abort - Abort any ongoing operation`

// HandleHelp показывает список команд
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, update.Message.Chat.ID, helpText)
}

// HandleAbort сбрасывает активный диалог
func (h *Handlers) HandleAbort(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if h.state.State(msg.From.ID) == state.StateNone {
		h.send(ctx, msg.Chat.ID, "Nothing to abort.")
		return
	}

	h.state.Clear(msg.From.ID)
	h.sendParams(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Aborted!",
		ReplyMarkup: &models.ReplyKeyboardRemove{RemoveKeyboard: true},
	})
}

// HandleUnknown отвечает на сообщение вне диалога и без известной команды
func (h *Handlers) HandleUnknown(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, update.Message.Chat.ID, "Sorry, I could not understand you.\n\n"+helpText)
}
