// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bossbitch/backend/config"
	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	"github.com/bossbitch/backend/internal/application/syncstore"
	"github.com/bossbitch/backend/internal/application/usecase/auth"
	"github.com/bossbitch/backend/internal/application/usecase/backup"
	"github.com/bossbitch/backend/internal/application/usecase/entry"
	"github.com/bossbitch/backend/internal/application/usecase/goalcfg"
	"github.com/bossbitch/backend/internal/application/usecase/preference"
	"github.com/bossbitch/backend/internal/application/usecase/source"
	"github.com/bossbitch/backend/internal/application/usecase/syncops"
	"github.com/bossbitch/backend/internal/infra/db"
	"github.com/bossbitch/backend/internal/infra/server/router"
	"github.com/bossbitch/backend/internal/integration/adapters"
	"github.com/bossbitch/backend/internal/integration/connectivity"
	"github.com/bossbitch/backend/internal/integration/email"
	"github.com/bossbitch/backend/internal/integration/email/templates"
	"github.com/bossbitch/backend/internal/integration/entrypoint/controller"
	"github.com/bossbitch/backend/internal/integration/entrypoint/middleware"
	"github.com/bossbitch/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	Router  *router.Router
	Monitor *connectivity.Monitor
	Session *session.Manager
	Store   *syncstore.Store
	Tokens  persistence.TokenRepository
}

// NewInjector creates a new dependency injector with all dependencies
// wired. The remote database carries the account data, the local one
// the anonymous on-device data plus the offline queue.
func NewInjector(cfg *config.Config, localDB *db.LocalDatabase, remoteDB *db.Database, redisClient *redis.Client) (*Injector, error) {
	// Session and connectivity
	sess := session.NewManager()
	monitor := connectivity.NewMonitor(remoteDB.Ping, slog.Default()).
		WithInterval(cfg.Sync.ProbeInterval).
		WithTimeout(cfg.Sync.ProbeTimeout)

	// Repositories
	userRepo := persistence.NewUserRepository(remoteDB.DB())
	tokenRepo := persistence.NewTokenRepository(remoteDB.DB())
	queue := persistence.NewSyncQueueRepository(localDB.DB())

	// Stores: the façade routes each call to local or remote
	localStore := persistence.NewLocalStore(localDB.DB())
	remoteFactory := func(userID uuid.UUID) adapter.DataStore {
		return persistence.NewRemoteStore(remoteDB.DB(), userID)
	}
	store := syncstore.New(localStore, remoteFactory, queue, monitor, sess)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, password reset emails will not be delivered")
		emailSender = email.NewMockEmailSender()
	}
	emailService := email.NewService(emailSender, renderer, cfg.Email.AppBaseURL)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, sess)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, sess)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService, sess)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, sess)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, sess)

	// Goal and preference use cases
	getGoalsUseCase := goalcfg.NewGetGoalsUseCase(store)
	updateGoalsUseCase := goalcfg.NewUpdateGoalsUseCase(store)
	getPreferencesUseCase := preference.NewGetPreferencesUseCase(store)
	updatePreferencesUseCase := preference.NewUpdatePreferencesUseCase(store)

	// Entry use cases
	addIncomeUseCase := entry.NewAddIncomeUseCase(store)
	getDayUseCase := entry.NewGetDayUseCase(store)
	listDaysUseCase := entry.NewListDaysUseCase(store)
	updateDayUseCase := entry.NewUpdateDayUseCase(store)
	deleteDayUseCase := entry.NewDeleteDayUseCase(store)
	getMonthUseCase := entry.NewGetMonthUseCase(store)
	listMonthsUseCase := entry.NewListMonthsUseCase(store)

	// Source use cases
	listSourcesUseCase := source.NewListSourcesUseCase(store)
	addSourceUseCase := source.NewAddSourceUseCase(store)
	updateSourceUseCase := source.NewUpdateSourceUseCase(store)
	updateSourceEverywhereUseCase := source.NewUpdateSourceEverywhereUseCase(store)

	// Backup and sync use cases
	exportDataUseCase := backup.NewExportDataUseCase(store)
	importDataUseCase := backup.NewImportDataUseCase(store)
	clearDataUseCase := backup.NewClearDataUseCase(store)
	migrateLocalUseCase := backup.NewMigrateLocalUseCase(store)
	inflight := middleware.NewInflightCounter()
	getStatusUseCase := syncops.NewGetStatusUseCase(store, monitor, sess, inflight.Count)
	replayQueueUseCase := syncops.NewReplayQueueUseCase(store)

	// Controllers
	healthController := controller.NewHealthController(localDB.HealthCheck, remoteDB.HealthCheck)
	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
		deleteAccountUseCase,
	)
	goalController := controller.NewGoalController(getGoalsUseCase, updateGoalsUseCase)
	preferenceController := controller.NewPreferenceController(getPreferencesUseCase, updatePreferencesUseCase)
	entryController := controller.NewEntryController(
		addIncomeUseCase,
		getDayUseCase,
		listDaysUseCase,
		updateDayUseCase,
		deleteDayUseCase,
		getMonthUseCase,
		listMonthsUseCase,
	)
	sourceController := controller.NewSourceController(
		listSourcesUseCase,
		addSourceUseCase,
		updateSourceUseCase,
		updateSourceEverywhereUseCase,
	)
	backupController := controller.NewBackupController(
		exportDataUseCase,
		importDataUseCase,
		clearDataUseCase,
		migrateLocalUseCase,
	)
	syncController := controller.NewSyncController(getStatusUseCase, replayQueueUseCase)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter(redisClient)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, sess)

	r := router.NewRouter(
		healthController,
		authController,
		goalController,
		preferenceController,
		entryController,
		sourceController,
		backupController,
		syncController,
		loginRateLimiter,
		authMiddleware,
		inflight,
	)

	return &Injector{
		Config:  cfg,
		Router:  r,
		Monitor: monitor,
		Session: sess,
		Store:   store,
		Tokens:  tokenRepo,
	}, nil
}
