package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/in"
	"github.com/bosco250/uruti-schedule-service/internal/core/services/schedule_service"
	"github.com/bosco250/uruti-schedule-service/internal/core/services/worklog_service"
	"github.com/bosco250/uruti-schedule-service/internal/utils"
)

type ScheduleController struct {
	scheduleUseCase in.ScheduleUseCase
	worklogUseCase  in.WorkLogUseCase
	cfg             *config.Config
}

func NewScheduleController(scheduleUseCase in.ScheduleUseCase, worklogUseCase in.WorkLogUseCase, cfg *config.Config) *ScheduleController {
	return &ScheduleController{
		scheduleUseCase: scheduleUseCase,
		worklogUseCase:  worklogUseCase,
		cfg:             cfg,
	}
}

func (c *ScheduleController) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID())

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/employees/:employeeId/slots", c.getSlots)
		api.POST("/slots/batch", c.getBatchSlots)
		api.POST("/bookings/validate", c.validateBooking)
		api.GET("/employees/:employeeId/worklog", c.getWorkLog)
		api.GET("/employees/:employeeId/worklog/summary", c.getWorkLogSummary)
	}
}

func (c *ScheduleController) getSlots(ctx *gin.Context) {
	employeeID := ctx.Param("employeeId")

	date, err := utils.ParseDate(ctx.Query("date"), c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	duration := c.cfg.Schedule.DefaultDurationMinutes
	if raw := ctx.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration"})
			return
		}
	}

	slots, err := c.scheduleUseCase.GenerateSlots(ctx.Request.Context(), employeeID, date, duration, ctx.Query("serviceId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"employeeId": employeeID,
		"date":       date.Format("2006-01-02"),
		"slots":      slots,
	})
}

type batchSlotsRequest struct {
	EmployeeIDs     []string `json:"employeeIds" binding:"required,min=1"`
	Date            string   `json:"date" binding:"required"`
	DurationMinutes int      `json:"durationMinutes"`
	ServiceID       string   `json:"serviceId"`
}

func (c *ScheduleController) getBatchSlots(ctx *gin.Context) {
	var req batchSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := utils.ParseDate(req.Date, c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = c.cfg.Schedule.DefaultDurationMinutes
	}

	result, err := c.scheduleUseCase.GenerateBatchSlots(ctx.Request.Context(), req.EmployeeIDs, date, duration, req.ServiceID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": result})
}

type validateBookingRequest struct {
	EmployeeID           string `json:"employeeId" binding:"required"`
	ServiceID            string `json:"serviceId"`
	StartTime            string `json:"startTime" binding:"required"`
	EndTime              string `json:"endTime" binding:"required"`
	ExcludeAppointmentID string `json:"excludeAppointmentId"`
}

func (c *ScheduleController) validateBooking(ctx *gin.Context) {
	var req validateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := utils.ParseDate(req.StartTime, c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time format"})
		return
	}

	end, err := utils.ParseDate(req.EndTime, c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time format"})
		return
	}

	result, err := c.scheduleUseCase.ValidateBooking(ctx.Request.Context(), domain.BookingRequest{
		EmployeeID:           req.EmployeeID,
		ServiceID:            req.ServiceID,
		StartTime:            start,
		EndTime:              end,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *ScheduleController) getWorkLog(ctx *gin.Context) {
	employeeID := ctx.Param("employeeId")

	date, err := utils.ParseDate(ctx.Query("date"), c.cfg.Location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	day, err := c.worklogUseCase.AggregateDay(ctx.Request.Context(), employeeID, date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, day)
}

func (c *ScheduleController) getWorkLogSummary(ctx *gin.Context) {
	employeeID := ctx.Param("employeeId")

	period := domain.SummaryPeriod(ctx.DefaultQuery("period", string(domain.SummaryPeriodWeek)))

	var start, end *time.Time
	if raw := ctx.Query("startDate"); raw != "" {
		parsed, err := utils.ParseDate(raw, c.cfg.Location)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format"})
			return
		}
		start = &parsed
	}
	if raw := ctx.Query("endDate"); raw != "" {
		parsed, err := utils.ParseDate(raw, c.cfg.Location)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format"})
			return
		}
		end = &parsed
	}

	summary, err := c.worklogUseCase.Summarize(ctx.Request.Context(), employeeID, period, start, end)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule_service.ErrInvalidInput),
		errors.Is(err, worklog_service.ErrInvalidInput),
		errors.Is(err, worklog_service.ErrInvalidPeriod):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Header("X-Request-Id", id)
		ctx.Next()
	}
}

func (c *ScheduleController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
