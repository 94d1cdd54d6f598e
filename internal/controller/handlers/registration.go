package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/controller/keyboard"
	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart регистрирует пользователя или приветствует уже знакомого
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	user, err := h.users.Ensure(ctx, msg.From.ID, msg.From.FirstName, msg.From.LastName)
	if err != nil {
		h.logger.Error("Failed to ensure user",
			zap.Int64("telegram_id", msg.From.ID),
			zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if user.Registered() {
		h.send(ctx, msg.Chat.ID, fmt.Sprintf(
			"Welcome back, %s! You're already registered with us.\n\n%s",
			user.FirstName, helpText))
		return
	}

	h.state.SetDraftUser(msg.From.ID, user)
	h.state.SetState(msg.From.ID, state.StateRecvPhoneNumber)

	h.sendParams(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: fmt.Sprintf(
			"Hi %s! Before we proceed, I need your Phone number.\nYou can use the button below to share it.",
			user.FirstName),
		ReplyMarkup: keyboard.ShareContact(),
	})
}

// stepRecvPhoneNumber принимает номер телефона контактом или текстом
func (h *Handlers) stepRecvPhoneNumber(ctx context.Context, msg *models.Message) {
	user := h.state.DraftUser(msg.From.ID)
	if user == nil {
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	raw := msg.Text
	if msg.Contact != nil {
		raw = msg.Contact.PhoneNumber
	}

	phoneNumber, err := h.users.NormalizePhoneNumber(raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhoneNumber) {
			// клавиатура одноразовая, возвращаем кнопку при каждом повторе
			h.sendParams(ctx, &bot.SendMessageParams{
				ChatID:      msg.Chat.ID,
				Text:        "That doesn't look like a valid Phone number.\nPlease try again.",
				ReplyMarkup: keyboard.ShareContact(),
			})
			return
		}
		h.logger.Error("Failed to normalize phone number", zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	user.PhoneNumber = phoneNumber
	h.state.SetState(msg.From.ID, state.StateRecvEmail)

	h.sendParams(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Thanks for the phone number!\nNext, I need your Email address.",
		ReplyMarkup: &models.ReplyKeyboardRemove{RemoveKeyboard: true},
	})
}

// stepRecvEmail завершает регистрацию
func (h *Handlers) stepRecvEmail(ctx context.Context, msg *models.Message) {
	user := h.state.DraftUser(msg.From.ID)
	if user == nil {
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if err := h.users.ValidateEmail(msg.Text); err != nil {
		h.send(ctx, msg.Chat.ID, "That doesn't look like a valid Email address.\nPlease try again.")
		return
	}

	user.Email = msg.Text
	if err := h.users.SaveContact(ctx, user); err != nil {
		h.logger.Error("Failed to save contact details",
			zap.Int64("telegram_id", msg.From.ID),
			zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	h.state.Clear(msg.From.ID)
	h.send(ctx, msg.Chat.ID, "Thanks for the email. You're all set-up now.\n\n"+helpText)
}
