package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

type StudyHandler struct {
	svc *services.StudyService
}

func NewStudyHandler(svc *services.StudyService) *StudyHandler {
	return &StudyHandler{
		svc: svc,
	}
}

// addLogRequest accepts the hours as a JSON number or a numeric string.
type addLogRequest struct {
	Time    json.RawMessage `json:"time"`
	Message string          `json:"message"`
}

func (r addLogRequest) input() domain.NewLogInput {
	raw := strings.TrimSpace(string(r.Time))
	var s string
	if err := json.Unmarshal(r.Time, &s); err == nil {
		raw = s
	}
	return domain.NewLogInput{Time: raw, Message: r.Message}
}

func (h *StudyHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard)
		dashboard.GET("/calendar", h.Calendar)
		dashboard.GET("/calendar/jump", h.JumpToYear)
	}

	today := router.Group("/today")
	{
		today.GET("", h.Today)
		today.POST("", h.AddLog)
	}
}

// Dashboard godoc
// @Summary  Study statistics and the current month calendar
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} services.DashboardView
// @Failure  401 {object} map[string]string
// @Router   /dashboard [get]
func (h *StudyHandler) Dashboard(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	view, err := h.svc.Dashboard(c.Request.Context(), store)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Calendar godoc
// @Summary  One month of the study calendar
// @Tags     dashboard
// @Param    month query string false "YYYY-MM, defaults to the current month"
// @Success  200 {object} domain.CalendarMonth
// @Router   /dashboard/calendar [get]
func (h *StudyHandler) Calendar(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	cal, err := h.svc.Calendar(c.Request.Context(), store, c.Query("month"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}

// JumpToYear godoc
// @Summary  Same month, another year
// @Tags     dashboard
// @Param    year  query int    true  "Target year"
// @Param    month query string false "Currently viewed YYYY-MM"
// @Success  200 {object} domain.CalendarMonth
// @Router   /dashboard/calendar/jump [get]
func (h *StudyHandler) JumpToYear(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}

	cal, err := h.svc.JumpToYear(c.Request.Context(), store, c.Query("month"), year)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}

// Today godoc
// @Summary  This week, Monday to today
// @Tags     today
// @Success  200 {object} services.TodayView
// @Router   /today [get]
func (h *StudyHandler) Today(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	view, err := h.svc.Today(c.Request.Context(), store)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddLog godoc
// @Summary  Log a study session
// @Tags     today
// @Accept   json
// @Param    body body domain.NewLogInput true "Hours and what was studied"
// @Success  201 {object} services.TodayView
// @Router   /today [post]
func (h *StudyHandler) AddLog(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	var req addLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.AddLog(c.Request.Context(), store, req.input()); err != nil {
		handleError(c, err)
		return
	}

	view, err := h.svc.Today(c.Request.Context(), store)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}
