package callbacks

import (
	"context"
	"errors"
	"fmt"

	"github.com/devxpy/gea-telegram-bot/internal/controller/keyboard"
	"github.com/devxpy/gea-telegram-bot/internal/controller/payload"
	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/model"
	"github.com/devxpy/gea-telegram-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleSlotSelect завершает бронирование: проверяет выбранный слот и сохраняет запись
func (c *Handler) handleSlotSelect(ctx context.Context, callback *models.CallbackQuery, p payload.SlotSelect) {
	user, ok := c.requireRegistered(ctx, callback)
	if !ok {
		return
	}

	msg := messageFrom(callback)
	if msg == nil {
		c.answer(ctx, callback.ID, "")
		return
	}

	if c.state.State(user.TelegramID) != state.StateRecvTimeSlot {
		// кнопка из завершённого диалога
		c.answer(ctx, callback.ID, "")
		return
	}

	draft := c.state.DraftAppointment(user.TelegramID)
	if draft == nil {
		c.state.Clear(user.TelegramID)
		c.answer(ctx, callback.ID, "")
		return
	}

	if err := c.bookings.SelectTimeSlot(ctx, draft, p.Weekday, p.TimeSlotID); err != nil {
		c.rejectSlot(ctx, callback, msg, err, draft)
		return
	}

	if err := c.bookings.Create(ctx, draft); err != nil {
		c.logger.Error("Failed to create appointment",
			zap.Int64("telegram_id", user.TelegramID),
			zap.Error(err))
		c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	c.state.Clear(user.TelegramID)
	c.answer(ctx, callback.ID, "")

	text := fmt.Sprintf(
		"Appointment scheduled for %s.\n\nTracking No. for your appointment is `%s`. You can use it to check the status of, or cancel the appointment.\n(Long press to copy)",
		model.PrettyTimeSlot(draft.Weekday, draft.TimeSlot),
		draft.TrackingNumber,
	)
	// подтверждение уходит отдельным сообщением, клавиатура слотов остаётся в истории
	_, err := c.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: keyboard.AppointmentActions(draft.ID),
	})
	if err != nil {
		c.logger.Error("Failed to send message", zap.Error(err))
	}
}

// rejectSlot перерисовывает клавиатуру, оставляя пользователя на шаге выбора слота.
// Транспортные ошибки не трогают диалог: пользователь просто нажмёт ещё раз.
func (c *Handler) rejectSlot(ctx context.Context, callback *models.CallbackQuery, msg *models.Message, err error, draft *model.Appointment) {
	if errors.Is(err, service.ErrNoCoverage) {
		c.state.Clear(callback.From.ID)
		c.answer(ctx, callback.ID, "")
		c.send(ctx, msg.Chat.ID, "Sorry, we don't serve your area yet!")
		return
	}

	if !errors.Is(err, model.ErrInvalidTimeSlot) && !errors.Is(err, model.ErrInvalidWeekday) {
		c.logger.Error("Failed to stage time slot",
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err))
		c.answer(ctx, callback.ID, "")
		return
	}

	c.answer(ctx, callback.ID, "")
	_, editErr := c.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "You entered an invalid Time slot.\nPlease choose a valid time slot.",
		ReplyMarkup: keyboard.BookingTimeSlots(draft.PinCode),
	})
	if editErr != nil {
		c.logger.Error("Failed to edit message", zap.Error(editErr))
	}
}

// handleReslotSelect переносит существующую запись на новый слот
func (c *Handler) handleReslotSelect(ctx context.Context, callback *models.CallbackQuery, p payload.ReslotSelect) {
	user, ok := c.requireRegistered(ctx, callback)
	if !ok {
		return
	}

	msg := messageFrom(callback)
	if msg == nil {
		c.answer(ctx, callback.ID, "")
		return
	}

	appointment, err := c.bookings.GetActiveByID(ctx, p.AppointmentID)
	if err != nil {
		c.logger.Error("Failed to load appointment",
			zap.Int64("appointment_id", p.AppointmentID),
			zap.Error(err))
		c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
		return
	}
	if appointment == nil || appointment.UserID != user.ID {
		c.answer(ctx, callback.ID, "")
		c.editText(ctx, msg, "Invalid Appointment!", nil)
		return
	}

	err = c.bookings.Reschedule(ctx, appointment, p.Weekday, p.TimeSlotID)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTimeSlot) || errors.Is(err, model.ErrInvalidWeekday) {
			c.answer(ctx, callback.ID, "")
			c.editText(ctx, msg,
				"You entered an invalid Time slot.\nPlease choose a valid time slot.",
				keyboard.RescheduleTimeSlots(appointment.PinCode, appointment.ID))
			return
		}
		c.logger.Error("Failed to reschedule appointment",
			zap.Int64("appointment_id", appointment.ID),
			zap.Error(err))
		c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	c.answer(ctx, callback.ID, "")
	c.editText(ctx, msg, fmt.Sprintf(
		"Appointment rescheduled for %s.",
		model.PrettyTimeSlot(appointment.Weekday, appointment.TimeSlot),
	), nil)
}

// handleCancelConfirm обрабатывает ответ на подтверждение отмены записи
func (c *Handler) handleCancelConfirm(ctx context.Context, callback *models.CallbackQuery, p payload.CancelConfirm) {
	user, ok := c.requireRegistered(ctx, callback)
	if !ok {
		return
	}

	msg := messageFrom(callback)
	if msg == nil {
		c.answer(ctx, callback.ID, "")
		return
	}

	if !p.Confirmed {
		c.answer(ctx, callback.ID, "")
		c.editText(ctx, msg, "Appointment cancellation Aborted!", nil)
		return
	}

	appointment, err := c.bookings.GetActiveByID(ctx, p.AppointmentID)
	if err != nil {
		c.logger.Error("Failed to load appointment",
			zap.Int64("appointment_id", p.AppointmentID),
			zap.Error(err))
		c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	// запись могла быть отменена с другой кнопки: ответ тот же
	if appointment != nil && appointment.UserID == user.ID {
		if err := c.bookings.Cancel(ctx, appointment.ID); err != nil {
			c.logger.Error("Failed to cancel appointment",
				zap.Int64("appointment_id", appointment.ID),
				zap.Error(err))
			c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
			return
		}
	}

	c.answer(ctx, callback.ID, "")
	c.editText(ctx, msg, "Okay, appointment cancelled.", nil)
}

// handleLink обрабатывает кнопки-ссылки под карточками записей
func (c *Handler) handleLink(ctx context.Context, callback *models.CallbackQuery, p payload.Link) {
	user, ok := c.requireRegistered(ctx, callback)
	if !ok {
		return
	}

	msg := messageFrom(callback)
	if msg == nil {
		c.answer(ctx, callback.ID, "")
		return
	}

	appointment, err := c.bookings.GetActiveByID(ctx, p.AppointmentID)
	if err != nil {
		c.logger.Error("Failed to load appointment",
			zap.Int64("appointment_id", p.AppointmentID),
			zap.Error(err))
		c.answerAlert(ctx, callback.ID, "Sorry, something went wrong. Please try again later.")
		return
	}

	c.answer(ctx, callback.ID, "")

	if appointment == nil || appointment.UserID != user.ID {
		c.send(ctx, msg.Chat.ID, "Invalid Appointment!")
		return
	}

	switch p.Target {
	case payload.LinkCheck:
		ShowDetails(ctx, c.client, c.logger, msg.Chat.ID, appointment)
	case payload.LinkCancel:
		ShowCancelPrompt(ctx, c.client, c.logger, msg.Chat.ID, appointment)
	case payload.LinkSchedule:
		ShowReschedulePrompt(ctx, c.client, c.logger, msg.Chat.ID, appointment)
	}
}

func (c *Handler) editText(ctx context.Context, msg *models.Message, text string, markup models.ReplyMarkup) {
	_, err := c.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		c.logger.Error("Failed to edit message", zap.Error(err))
	}
}
