package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/controller/keyboard"
	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/geocode"
	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBook начинает диалог бронирования
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	h.state.SetState(msg.From.ID, state.StateRecvSerialNumber)
	h.send(ctx, msg.Chat.ID, "Please enter the Serial number of your appliance.")
}

// stepRecvSerialNumber ищет прибор по серийному номеру и создаёт черновик заявки
func (h *Handlers) stepRecvSerialNumber(ctx context.Context, msg *models.Message) {
	appliance, err := h.bookings.FindAppliance(ctx, msg.Text)
	if err != nil {
		h.logger.Error("Failed to look up appliance", zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if appliance == nil {
		h.send(ctx, msg.Chat.ID, "Sorry, this doesn't seem to be a valid Serial number.\nPlease try again.")
		return
	}

	user, err := h.users.GetByTelegramID(ctx, msg.From.ID)
	if err != nil || user == nil {
		h.logger.Error("Failed to get user",
			zap.Int64("telegram_id", msg.From.ID),
			zap.Error(err))
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	draft, err := h.bookings.NewDraft(user, appliance)
	if err != nil {
		h.logger.Error("Failed to create appointment draft", zap.Error(err))
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	h.state.SetDraftAppointment(msg.From.ID, draft)
	h.state.SetState(msg.From.ID, state.StateRecvLocation)

	h.send(ctx, msg.Chat.ID, fmt.Sprintf(
		"Checks out! Your appliance is a %s.\nNext, please share your Location, or type in your Address manually.",
		appliance.Name))
}

// stepRecvLocation принимает геолокацию или адрес текстом
func (h *Handlers) stepRecvLocation(ctx context.Context, msg *models.Message) {
	draft := h.state.DraftAppointment(msg.From.ID)
	if draft == nil {
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if msg.Location == nil {
		// ручной ввод адреса: pin code спрашиваем отдельным шагом
		draft.Address = msg.Text
		h.state.SetState(msg.From.ID, state.StateRecvPinCode)
		h.send(ctx, msg.Chat.ID, "Please enter the pin code for this address.")
		return
	}

	progress := h.sendParams(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "Retrieving address...",
	})

	result, err := h.geocoder.ReverseGeocode(ctx, msg.Location.Latitude, msg.Location.Longitude)
	if err != nil {
		h.rejectLocation(ctx, msg, progress, err)
		return
	}

	draft.Address = result.FormattedAddress
	draft.PlaceID = result.PlaceID

	if progress != nil {
		h.editText(ctx, msg.Chat.ID, progress.ID, fmt.Sprintf("Got it! Your address is:\n%s", result.FormattedAddress))
	}

	h.acceptPinCode(ctx, msg, draft, result.PostalCode)
}

// rejectLocation оставляет пользователя на шаге локации после неудачного геокодинга
func (h *Handlers) rejectLocation(ctx context.Context, msg *models.Message, progress *models.Message, err error) {
	text := "Sorry, but I couldn't fetch your location.\nCan you please enter your Address manually?"
	if errors.Is(err, geocode.ErrMalformed) {
		text = "Invalid location!\nPlease share a valid Location, or type in your Address manually."
	} else {
		h.logger.Warn("Reverse geocoding failed", zap.Error(err))
	}

	if progress != nil {
		h.editText(ctx, msg.Chat.ID, progress.ID, text)
		return
	}
	h.send(ctx, msg.Chat.ID, text)
}

// stepRecvPinCode принимает pin code при ручном вводе адреса
func (h *Handlers) stepRecvPinCode(ctx context.Context, msg *models.Message) {
	draft := h.state.DraftAppointment(msg.From.ID)
	if draft == nil {
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	h.acceptPinCode(ctx, msg, draft, msg.Text)
}

// acceptPinCode проверяет зону обслуживания и двигает диалог к причине визита.
// Отсутствие покрытия завершает диалог: повторный ввод pin code не поможет.
func (h *Handlers) acceptPinCode(ctx context.Context, msg *models.Message, draft *model.Appointment, code string) {
	pinCode, err := h.bookings.FindPinCode(ctx, code)
	if err != nil {
		h.logger.Error("Failed to look up pin code", zap.Error(err))
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	if pinCode == nil {
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, fmt.Sprintf("Sorry, we don't serve your area (pin code %s) yet!", code))
		return
	}

	draft.PinCodeID = pinCode.ID
	draft.PinCode = pinCode
	h.state.SetState(msg.From.ID, state.StateRecvReason)

	h.send(ctx, msg.Chat.ID, "What seems to be the problem with your appliance?\nPlease describe your issue in a few words.")
}

// stepRecvReason запоминает причину визита и показывает сетку слотов
func (h *Handlers) stepRecvReason(ctx context.Context, msg *models.Message) {
	draft := h.state.DraftAppointment(msg.From.ID)
	if draft == nil || draft.PinCode == nil {
		h.state.Clear(msg.From.ID)
		h.send(ctx, msg.Chat.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	draft.Reason = msg.Text
	h.state.SetState(msg.From.ID, state.StateRecvTimeSlot)

	h.sendParams(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "When would be a good time for our representative to visit you?\nPlease pick one of the available time slots.",
		ReplyMarkup: keyboard.BookingTimeSlots(draft.PinCode),
	})
}

// stepRemindTimeSlot отвечает на текст, пока бот ждёт нажатия кнопки слота
func (h *Handlers) stepRemindTimeSlot(ctx context.Context, msg *models.Message) {
	h.send(ctx, msg.Chat.ID, "Please use the buttons above to pick a time slot, or /abort to start over.")
}

func (h *Handlers) editText(ctx context.Context, chatID int64, messageID int, text string) {
	_, err := h.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		h.logger.Error("Failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
