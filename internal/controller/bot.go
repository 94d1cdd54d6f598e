package controller

import (
	"context"

	"github.com/devxpy/gea-telegram-bot/internal/controller/callbacks"
	"github.com/devxpy/gea-telegram-bot/internal/controller/handlers"
	"github.com/devxpy/gea-telegram-bot/internal/controller/state"
	"github.com/devxpy/gea-telegram-bot/internal/geocode"
	"github.com/devxpy/gea-telegram-bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	cmdHandlers *handlers.Handlers,
	callbackHandler *callbacks.Handler,
	logger *zap.Logger,
) *BotController {
	cmdHandlers.Bind(botInstance)
	callbackHandler.Bind(botInstance)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// NewDialogHandlers собирает обработчики команд и кнопок поверх общего менеджера состояний
func NewDialogHandlers(
	userService *service.UserService,
	bookingService *service.BookingService,
	geocoder geocode.Geocoder,
	logger *zap.Logger,
) (*handlers.Handlers, *callbacks.Handler) {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.New(
		userService,
		bookingService,
		geocoder,
		stateManager,
		logger,
	)

	// Создаём callback handler с теми же зависимостями
	callbackHandler := callbacks.New(
		userService,
		bookingService,
		stateManager,
		logger,
	)

	return cmdHandlers, callbackHandler
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды, доступные без регистрации
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/abort", bot.MatchTypeExact, c.handlers.HandleAbort)

	// Команды работы с заявками: только для зарегистрированных
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.AuthGate(c.handlers.HandleBook))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/list", bot.MatchTypeExact, c.handlers.AuthGate(c.handlers.HandleList))

	// Эти команды могут нести Tracking No. аргументом, поэтому matching по префиксу
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/check", bot.MatchTypePrefix, c.handlers.AuthGate(c.handlers.HandleCheck))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.AuthGate(c.handlers.HandleCancel))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypePrefix, c.handlers.AuthGate(c.handlers.HandleSchedule))

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Register yourself with us"},
		{Command: "book", Description: "🔧 Book an appointment"},
		{Command: "list", Description: "📅 View your appointments"},
		{Command: "check", Description: "🔍 Check the status of an appointment"},
		{Command: "cancel", Description: "❌ Cancel an appointment"},
		{Command: "schedule", Description: "🗓 Re-schedule an appointment"},
		{Command: "help", Description: "❓ Show the list of commands"},
		{Command: "abort", Description: "🚫 Abort any ongoing operation"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
