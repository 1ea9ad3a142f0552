package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/application/usecase/backup"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// BackupController handles export, import and migration endpoints.
type BackupController struct {
	exportUseCase  *backup.ExportDataUseCase
	importUseCase  *backup.ImportDataUseCase
	clearUseCase   *backup.ClearDataUseCase
	migrateUseCase *backup.MigrateLocalUseCase
}

// NewBackupController creates a new backup controller instance.
func NewBackupController(
	exportUseCase *backup.ExportDataUseCase,
	importUseCase *backup.ImportDataUseCase,
	clearUseCase *backup.ClearDataUseCase,
	migrateUseCase *backup.MigrateLocalUseCase,
) *BackupController {
	return &BackupController{
		exportUseCase:  exportUseCase,
		importUseCase:  importUseCase,
		clearUseCase:   clearUseCase,
		migrateUseCase: migrateUseCase,
	}
}

// Export handles GET /backup/export requests.
func (c *BackupController) Export(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleBackupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ExportResponse{Snapshot: output.Snapshot})
}

// Import handles POST /backup/import requests. The snapshot replaces
// all existing data in the active store.
func (c *BackupController) Import(ctx *gin.Context) {
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMalformedSnapshot),
		})
		return
	}

	input := backup.ImportDataInput{
		Snapshot: req.Snapshot,
	}

	if err := c.importUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleBackupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Data imported"})
}

// Clear handles POST /backup/clear requests.
func (c *BackupController) Clear(ctx *gin.Context) {
	if err := c.clearUseCase.Execute(ctx.Request.Context()); err != nil {
		c.handleBackupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "All data cleared"})
}

// Migrate handles POST /backup/migrate requests, moving anonymous local
// data into the signed-in user's account.
func (c *BackupController) Migrate(ctx *gin.Context) {
	output, err := c.migrateUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleBackupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MigrateResponse{
		DailyEntries: output.DailyEntries,
		Sources:      output.Sources,
		Message:      "Local data migrated to account",
	})
}

// handleBackupError handles backup domain errors and returns appropriate
// HTTP responses.
func (c *BackupController) handleBackupError(ctx *gin.Context, err error) {
	var backupErr *domainerror.BackupError
	if errors.As(err, &backupErr) {
		statusCode := c.getStatusCodeForBackupError(backupErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: backupErr.Message,
			Code:  string(backupErr.Code),
		})
		return
	}

	handleEntryError(ctx, err)
}

// getStatusCodeForBackupError maps backup error codes to HTTP status codes.
func (c *BackupController) getStatusCodeForBackupError(code domainerror.BackupErrorCode) int {
	switch code {
	case domainerror.ErrCodeMalformedSnapshot,
		domainerror.ErrCodeUnsupportedVersion:
		return http.StatusBadRequest
	case domainerror.ErrCodeMigrationRequiresAuth:
		return http.StatusUnauthorized
	case domainerror.ErrCodeImportFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
