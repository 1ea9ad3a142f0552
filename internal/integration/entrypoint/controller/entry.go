package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bossbitch/backend/internal/application/usecase/entry"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/entrypoint/dto"
)

// EntryController handles daily entry and monthly aggregate endpoints.
type EntryController struct {
	addIncomeUseCase  *entry.AddIncomeUseCase
	getDayUseCase     *entry.GetDayUseCase
	listDaysUseCase   *entry.ListDaysUseCase
	updateDayUseCase  *entry.UpdateDayUseCase
	deleteDayUseCase  *entry.DeleteDayUseCase
	getMonthUseCase   *entry.GetMonthUseCase
	listMonthsUseCase *entry.ListMonthsUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	addIncomeUseCase *entry.AddIncomeUseCase,
	getDayUseCase *entry.GetDayUseCase,
	listDaysUseCase *entry.ListDaysUseCase,
	updateDayUseCase *entry.UpdateDayUseCase,
	deleteDayUseCase *entry.DeleteDayUseCase,
	getMonthUseCase *entry.GetMonthUseCase,
	listMonthsUseCase *entry.ListMonthsUseCase,
) *EntryController {
	return &EntryController{
		addIncomeUseCase:  addIncomeUseCase,
		getDayUseCase:     getDayUseCase,
		listDaysUseCase:   listDaysUseCase,
		updateDayUseCase:  updateDayUseCase,
		deleteDayUseCase:  deleteDayUseCase,
		getMonthUseCase:   getMonthUseCase,
		listMonthsUseCase: listMonthsUseCase,
	}
}

// AddIncome handles POST /entries/daily/:date/income requests.
func (c *EntryController) AddIncome(ctx *gin.Context) {
	date, ok := c.parseDateParam(ctx)
	if !ok {
		return
	}

	var req dto.AddIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	input := entry.AddIncomeInput{
		Date:   date,
		Amount: req.Amount,
		Source: req.Source.ToIncomeSource(),
	}

	output, err := c.addIncomeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyEntryResponse(output.Entry))
}

// GetDay handles GET /entries/daily/:date requests.
func (c *EntryController) GetDay(ctx *gin.Context) {
	date, ok := c.parseDateParam(ctx)
	if !ok {
		return
	}

	output, err := c.getDayUseCase.Execute(ctx.Request.Context(), entry.GetDayInput{Date: date})
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	if output.Entry == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "No entry recorded for this day",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyEntryResponse(output.Entry))
}

// ListDays handles GET /entries/daily requests with start and end query
// parameters.
func (c *EntryController) ListDays(ctx *gin.Context) {
	start, err := entity.ParseDateKey(ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}
	end, err := entity.ParseDateKey(ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	input := entry.ListDaysInput{Start: start, End: end}

	output, err := c.listDaysUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyEntryListResponse(output.Entries))
}

// UpdateDay handles PUT /entries/daily/:date requests. An empty segment
// list deletes the day.
func (c *EntryController) UpdateDay(ctx *gin.Context) {
	date, ok := c.parseDateParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateDayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	input := entry.UpdateDayInput{
		Entry: req.ToDailyEntry(entity.DateKey(date)),
	}

	output, err := c.updateDayUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	if output.Entry == nil {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry deleted"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyEntryResponse(output.Entry))
}

// DeleteDay handles DELETE /entries/daily/:date requests. Deleting an
// absent day succeeds.
func (c *EntryController) DeleteDay(ctx *gin.Context) {
	date, ok := c.parseDateParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteDayUseCase.Execute(ctx.Request.Context(), entry.DeleteDayInput{Date: date}); err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Entry deleted"})
}

// GetMonth handles GET /entries/monthly/:month requests, where month is
// a YYYY-MM key.
func (c *EntryController) GetMonth(ctx *gin.Context) {
	year, month, err := entity.ParseMonthKey(ctx.Param("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month, expected YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	input := entry.GetMonthInput{Year: year, Month: month}

	output, err := c.getMonthUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	if output.Entry == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "No entries recorded for this month",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyEntryResponse(output.Entry))
}

// ListMonths handles GET /entries/monthly requests with start and end
// query parameters (YYYY-MM keys).
func (c *EntryController) ListMonths(ctx *gin.Context) {
	startYear, startMonth, err := entity.ParseMonthKey(ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start month, expected YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}
	endYear, endMonth, err := entity.ParseMonthKey(ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end month, expected YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return
	}

	input := entry.ListMonthsInput{
		StartYear:  startYear,
		StartMonth: startMonth,
		EndYear:    endYear,
		EndMonth:   endMonth,
	}

	output, err := c.listMonthsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyEntryListResponse(output.Entries))
}

// parseDateParam parses the :date path parameter. Responds with a 400
// and returns false on malformed input.
func (c *EntryController) parseDateParam(ctx *gin.Context) (time.Time, bool) {
	parsed, err := entity.ParseDateKey(ctx.Param("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDate),
		})
		return time.Time{}, false
	}
	return parsed, true
}
