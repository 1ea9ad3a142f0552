// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	"github.com/bossbitch/backend/internal/infra/server/router"
	"github.com/bossbitch/backend/internal/integration/adapters"
	"github.com/bossbitch/backend/internal/integration/connectivity"
	"github.com/bossbitch/backend/internal/integration/email"
	"github.com/bossbitch/backend/internal/integration/email/templates"
	"github.com/bossbitch/backend/internal/integration/entrypoint/controller"
	"github.com/bossbitch/backend/internal/integration/entrypoint/middleware"
	"github.com/bossbitch/backend/internal/integration/persistence"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
	"github.com/bossbitch/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken      string
	refreshToken     string
	prevRefreshToken string
	asideAccessToken string

	// Wiring under test
	localDb     *mock.Db
	remoteDb    *mock.Db
	redis       *mock.Redis
	session     *session.Manager
	monitor     *connectivity.Monitor
	store       *syncstore.Store
	queue       adapter.SyncQueue
	emailSender *email.MockEmailSender
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := newTestContext()
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			tc.teardown()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerSyncSteps(ctx)
}

// newTestContext wires the whole daemon against in-memory stores: a
// SQLite pair for local and remote, miniredis for the rate limiter, a
// mock email sender, and a connectivity monitor driven by the
// scenario instead of a probe.
func newTestContext() *TestContext {
	localDb := mock.NewDb(
		&model.LocalRecordModel{},
		&model.SyncActionModel{},
	)
	remoteDb := mock.NewDb(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.PasswordResetTokenModel{},
		&model.GoalModel{},
		&model.PreferencesModel{},
		&model.IncomeSourceModel{},
		&model.DailyEntryModel{},
		&model.MonthlyEntryModel{},
	)
	redis := mock.NewRedis()

	sess := session.NewManager()
	monitor := connectivity.NewMonitor(func(ctx context.Context) error { return nil }, slog.Default())

	queue := persistence.NewSyncQueueRepository(localDb.Conn)
	localStore := persistence.NewLocalStore(localDb.Conn)
	remoteFactory := func(userID uuid.UUID) adapter.DataStore {
		return persistence.NewRemoteStore(remoteDb.Conn, userID)
	}
	store := syncstore.New(localStore, remoteFactory, queue, monitor, sess)

	userRepo := persistence.NewUserRepository(remoteDb.Conn)
	tokenRepo := persistence.NewTokenRepository(remoteDb.Conn)
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("integration-test-secret", tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	renderer, err := templates.NewRenderer()
	if err != nil {
		panic(err)
	}
	emailSender := email.NewMockEmailSender()
	emailService := email.NewService(emailSender, renderer, "http://localhost:5173")

	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, sess),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, sess),
		auth.NewRefreshTokenUseCase(tokenService, sess),
		auth.NewLogoutUserUseCase(tokenService, sess),
		auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService),
		auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService),
		auth.NewDeleteAccountUseCase(userRepo, passwordService, sess),
	)
	goalController := controller.NewGoalController(
		goalcfg.NewGetGoalsUseCase(store),
		goalcfg.NewUpdateGoalsUseCase(store),
	)
	preferenceController := controller.NewPreferenceController(
		preference.NewGetPreferencesUseCase(store),
		preference.NewUpdatePreferencesUseCase(store),
	)
	entryController := controller.NewEntryController(
		entry.NewAddIncomeUseCase(store),
		entry.NewGetDayUseCase(store),
		entry.NewListDaysUseCase(store),
		entry.NewUpdateDayUseCase(store),
		entry.NewDeleteDayUseCase(store),
		entry.NewGetMonthUseCase(store),
		entry.NewListMonthsUseCase(store),
	)
	sourceController := controller.NewSourceController(
		source.NewListSourcesUseCase(store),
		source.NewAddSourceUseCase(store),
		source.NewUpdateSourceUseCase(store),
		source.NewUpdateSourceEverywhereUseCase(store),
	)
	backupController := controller.NewBackupController(
		backup.NewExportDataUseCase(store),
		backup.NewImportDataUseCase(store),
		backup.NewClearDataUseCase(store),
		backup.NewMigrateLocalUseCase(store),
	)
	inflight := middleware.NewInflightCounter()
	syncController := controller.NewSyncController(
		syncops.NewGetStatusUseCase(store, monitor, sess, inflight.Count),
		syncops.NewReplayQueueUseCase(store),
	)
	healthController := controller.NewHealthController(
		func() bool { return true },
		func() bool { return true },
	)

	r := router.NewRouter(
		healthController,
		authController,
		goalController,
		preferenceController,
		entryController,
		sourceController,
		backupController,
		syncController,
		middleware.NewRateLimiter(redis.Client),
		middleware.NewAuthMiddleware(tokenService, sess),
		inflight,
	)
	engine := r.Setup("test")

	return &TestContext{
		requestHeaders: make(map[string]string),
		server:         httptest.NewServer(engine),
		localDb:        localDb,
		remoteDb:       remoteDb,
		redis:          redis,
		session:        sess,
		monitor:        monitor,
		store:          store,
		queue:          queue,
		emailSender:    emailSender,
	}
}

func (tc *TestContext) teardown() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.redis != nil {
		tc.redis.Close()
	}
	if tc.localDb != nil {
		_ = tc.localDb.Close()
	}
	if tc.remoteDb != nil {
		_ = tc.remoteDb.Close()
	}
}
