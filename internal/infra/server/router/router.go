// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/integration/entrypoint/controller"
	"github.com/bossbitch/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	goalController       *controller.GoalController
	preferenceController *controller.PreferenceController
	entryController      *controller.EntryController
	sourceController     *controller.SourceController
	backupController     *controller.BackupController
	syncController       *controller.SyncController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
	inflight             *middleware.InflightCounter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	goalController *controller.GoalController,
	preferenceController *controller.PreferenceController,
	entryController *controller.EntryController,
	sourceController *controller.SourceController,
	backupController *controller.BackupController,
	syncController *controller.SyncController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	inflight *middleware.InflightCounter,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		goalController:       goalController,
		preferenceController: preferenceController,
		entryController:      entryController,
		sourceController:     sourceController,
		backupController:     backupController,
		syncController:       syncController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
		inflight:             inflight,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. The data routes accept
// anonymous callers: without a token they serve the local store, with
// one the façade routes to the account's remote store.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.loginRateLimiter.Middleware(), r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}

			account := v1.Group("/auth/account")
			account.Use(r.authMiddleware.Authenticate())
			{
				account.DELETE("", r.authController.DeleteAccount)
			}
		}

		// Goal configuration routes (anonymous or signed in)
		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.inflight.Middleware(), r.authMiddleware.OptionalAuthenticate())
			{
				goals.GET("", r.goalController.Get)
				goals.PUT("", r.goalController.Update)
			}
		}

		// Preference routes (anonymous or signed in)
		if r.preferenceController != nil && r.authMiddleware != nil {
			preferences := v1.Group("/preferences")
			preferences.Use(r.inflight.Middleware(), r.authMiddleware.OptionalAuthenticate())
			{
				preferences.GET("", r.preferenceController.Get)
				preferences.PUT("", r.preferenceController.Update)
			}
		}

		// Daily entry and monthly aggregate routes (anonymous or signed in)
		if r.entryController != nil && r.authMiddleware != nil {
			entries := v1.Group("/entries")
			entries.Use(r.inflight.Middleware(), r.authMiddleware.OptionalAuthenticate())
			{
				entries.GET("/daily", r.entryController.ListDays)
				entries.GET("/daily/:date", r.entryController.GetDay)
				entries.PUT("/daily/:date", r.entryController.UpdateDay)
				entries.DELETE("/daily/:date", r.entryController.DeleteDay)
				entries.POST("/daily/:date/income", r.entryController.AddIncome)
				entries.GET("/monthly", r.entryController.ListMonths)
				entries.GET("/monthly/:month", r.entryController.GetMonth)
			}
		}

		// Income source catalog routes (anonymous or signed in)
		if r.sourceController != nil && r.authMiddleware != nil {
			sources := v1.Group("/sources")
			sources.Use(r.inflight.Middleware(), r.authMiddleware.OptionalAuthenticate())
			{
				sources.GET("", r.sourceController.List)
				sources.POST("", r.sourceController.Add)
				sources.PUT("/:id", r.sourceController.Update)
			}
		}

		// Backup routes; migration requires a signed-in session
		if r.backupController != nil && r.authMiddleware != nil {
			backup := v1.Group("/backup")
			backup.Use(r.inflight.Middleware(), r.authMiddleware.OptionalAuthenticate())
			{
				backup.GET("/export", r.backupController.Export)
				backup.POST("/import", r.backupController.Import)
				backup.POST("/clear", r.backupController.Clear)
			}

			migrate := v1.Group("/backup/migrate")
			migrate.Use(r.inflight.Middleware(), r.authMiddleware.Authenticate())
			{
				migrate.POST("", r.backupController.Migrate)
			}
		}

		// Sync routes
		if r.syncController != nil {
			sync := v1.Group("/sync")
			{
				sync.GET("/status", r.syncController.Status)
				sync.POST("/replay", r.syncController.Replay)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
