// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/notification"
	"github.com/expense-tracker/backend/internal/application/usecase/prediction"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/application/usecase/settings"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/scheduler"
)

// Repositories groups the storage adapters.
type Repositories struct {
	Users      adapter.UserRepository
	Expenses   adapter.ExpenseRepository
	Budgets    adapter.BudgetRepository
	Settings   adapter.SettingsRepository
	Recurring  adapter.RecurringExpenseRepository
	Pending    adapter.PendingExpenseRepository
	EmailQueue adapter.EmailQueueRepository
}

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	Database         *db.Database
	Redis            *redis.Client
	Repositories     Repositories
	Router           *router.Router
	LoginRateLimiter *middleware.RateLimiter
	EmailWorker      *email.Worker
	Scheduler        *scheduler.Scheduler

	Materialize  *recurring.MaterializePendingUseCase
	ListPending  *recurring.ListPendingUseCase
	BudgetStatus *budget.GetBudgetStatusUseCase
}

// Option customizes NewInjector.
type Option func(*options)

type options struct {
	clock  adapter.Clock
	sender adapter.EmailSender
}

// WithClock replaces the wall clock used by every use case.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithEmailSender replaces the sender built from the email configuration.
func WithEmailSender(sender adapter.EmailSender) Option {
	return func(o *options) { o.sender = sender }
}

// NewInjector wires every dependency. redisClient may be nil, in which case refresh
// tokens are kept in the database and materialization locks are process-local.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client, opts ...Option) (*Injector, error) {
	o := options{clock: adapter.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	gormDB := database.DB()
	clock := o.clock

	repos := Repositories{
		Users:      persistence.NewUserRepository(gormDB),
		Expenses:   persistence.NewExpenseRepository(gormDB),
		Budgets:    persistence.NewBudgetRepository(gormDB),
		Settings:   persistence.NewSettingsRepository(gormDB),
		Recurring:  persistence.NewRecurringExpenseRepository(gormDB),
		Pending:    persistence.NewPendingExpenseRepository(gormDB),
		EmailQueue: persistence.NewEmailQueueRepository(gormDB),
	}

	var (
		tokenStore adapter.RefreshTokenStore
		locker     adapter.Locker
	)
	if redisClient != nil {
		tokenStore = cache.NewRefreshTokenStore(redisClient)
		locker = cache.NewRedisLocker(redisClient)
	} else {
		tokenStore = persistence.NewRefreshTokenStore(gormDB)
		locker = cache.NewMemoryLocker()
	}

	// Adapters
	passwordService := adapters.NewPasswordService(cfg.Server.BcryptCost)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:             cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.JWT.RefreshTokenExpiry,
	}, tokenStore)
	emailService := email.NewService(repos.EmailQueue, cfg.Email.AppBaseURL)

	var suggester adapter.CategorySuggester
	if cfg.AI.GeminiAPIKey != "" {
		suggester = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model)
	} else {
		slog.Info("GEMINI_API_KEY not set, category suggestions use history only")
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(repos.Users, passwordService, tokenService, clock)
	loginUseCase := auth.NewLoginUserUseCase(repos.Users, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(repos.Users, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(repos.Expenses)
	listExpensesUseCase := expense.NewListExpensesUseCase(repos.Expenses)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(repos.Expenses)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(repos.Expenses)
	breakdownUseCase := expense.NewGetBreakdownUseCase(repos.Expenses, clock)
	suggestCategoryUseCase := expense.NewSuggestCategoryUseCase(repos.Expenses, suggester)

	// Budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(repos.Budgets, clock)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(repos.Budgets)
	getBudgetUseCase := budget.NewGetBudgetUseCase(repos.Budgets)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(repos.Budgets)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(repos.Budgets)
	budgetStatusUseCase := budget.NewGetBudgetStatusUseCase(repos.Budgets, repos.Expenses, repos.Settings, clock)

	// Settings use cases
	getSettingsUseCase := settings.NewGetSettingsUseCase(repos.Settings)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(repos.Settings)
	limitStatusUseCase := settings.NewGetCategoryLimitStatusUseCase(repos.Settings, repos.Expenses, clock)

	// Recurring use cases
	createRecurringUseCase := recurring.NewCreateRecurringExpenseUseCase(repos.Recurring)
	listRecurringUseCase := recurring.NewListRecurringExpensesUseCase(repos.Recurring)
	updateRecurringUseCase := recurring.NewUpdateRecurringExpenseUseCase(repos.Recurring, clock)
	deleteRecurringUseCase := recurring.NewDeleteRecurringExpenseUseCase(repos.Recurring)
	materializeUseCase := recurring.NewMaterializePendingUseCase(repos.Recurring, repos.Pending, locker, clock).
		WithLockTTL(cfg.Scheduler.LockTTL)
	listPendingUseCase := recurring.NewListPendingUseCase(repos.Pending, repos.Recurring, clock)
	confirmPendingUseCase := recurring.NewConfirmPendingUseCase(repos.Pending, repos.Recurring)
	skipPendingUseCase := recurring.NewSkipPendingUseCase(repos.Pending)

	// Notification use cases
	notifyDueUseCase := notification.NewNotifyRecurringDueUseCase(repos.Users, emailService)
	remindersUseCase := notification.NewSendRecurringRemindersUseCase(repos.Recurring, repos.Users, emailService, clock)
	budgetAlertUseCase := notification.NewCheckBudgetAlertUseCase(repos.Budgets, repos.Expenses, repos.Users, emailService, clock)

	predictionUseCase := prediction.NewGetPredictionUseCase(repos.Expenses, repos.Budgets, clock)

	// Controllers
	var cacheCheck controller.HealthCheck
	if redisClient != nil {
		cacheCheck = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	controllers := router.Controllers{
		Health: controller.NewHealthController(database.Ping, cacheCheck),
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		),
		Expense: controller.NewExpenseController(
			createExpenseUseCase,
			listExpensesUseCase,
			updateExpenseUseCase,
			deleteExpenseUseCase,
			breakdownUseCase,
			suggestCategoryUseCase,
		),
		Budget: controller.NewBudgetController(
			createBudgetUseCase,
			listBudgetsUseCase,
			getBudgetUseCase,
			updateBudgetUseCase,
			deleteBudgetUseCase,
			budgetStatusUseCase,
		),
		Settings: controller.NewSettingsController(
			getSettingsUseCase,
			updateSettingsUseCase,
			limitStatusUseCase,
		),
		Recurring: controller.NewRecurringController(
			createRecurringUseCase,
			listRecurringUseCase,
			updateRecurringUseCase,
			deleteRecurringUseCase,
			materializeUseCase,
			listPendingUseCase,
			confirmPendingUseCase,
			skipPendingUseCase,
		),
		Prediction: controller.NewPredictionController(predictionUseCase),
	}

	loginRateLimiter := middleware.NewRateLimiter(cfg.Server.LoginRateLimit, cfg.Server.LoginRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Workers
	sender := o.sender
	if sender == nil {
		var err error
		if sender, err = newEmailSender(cfg.Email); err != nil {
			return nil, err
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	worker := email.NewWorker(repos.EmailQueue, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Retention:    cfg.Email.Retention,
	})

	sched := scheduler.NewScheduler(
		repos.Recurring,
		repos.Budgets,
		materializeUseCase,
		notifyDueUseCase,
		remindersUseCase,
		budgetAlertUseCase,
		scheduler.Config{PollInterval: cfg.Scheduler.PollInterval},
	)

	return &Injector{
		Config:           cfg,
		Database:         database,
		Redis:            redisClient,
		Repositories:     repos,
		Router:           router.NewRouter(controllers, loginRateLimiter, authMiddleware),
		LoginRateLimiter: loginRateLimiter,
		EmailWorker:      worker,
		Scheduler:        sched,
		Materialize:      materializeUseCase,
		ListPending:      listPendingUseCase,
		BudgetStatus:     budgetStatusUseCase,
	}, nil
}

// newEmailSender returns the Resend client, or a logging mock when no API key is configured.
func newEmailSender(cfg config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails are recorded but not delivered")
		return email.NewMockEmailSender(), nil
	}
	client, err := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, cfg.ResendBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}
	return client, nil
}
