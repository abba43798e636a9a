package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

type RoutineHandler struct {
	editor *services.RoutineEditor
}

func NewRoutineHandler(editor *services.RoutineEditor) *RoutineHandler {
	return &RoutineHandler{
		editor: editor,
	}
}

type addEntryRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
}

func (h *RoutineHandler) RegisterRoutes(router *gin.RouterGroup) {
	routine := router.Group("/routine")
	{
		routine.GET("", h.Get)
		routine.POST("/edit", h.BeginEdit)
		routine.POST("/entries", h.AddEntry)
		routine.DELETE("/entries/:day/:index", h.DeleteEntry)
		routine.POST("/save", h.Save)
		routine.POST("/cancel", h.Cancel)
	}
}

// Get godoc
// @Summary  Weekly routine and whether it is being edited
// @Tags     routine
// @Success  200 {object} services.RoutineState
// @Router   /routine [get]
func (h *RoutineHandler) Get(c *gin.Context) {
	h.respond(c, http.StatusOK, func(store *session.Store) (*services.RoutineState, error) {
		return h.editor.State(c.Request.Context(), store)
	})
}

// BeginEdit godoc
// @Summary  Enter edit mode
// @Tags     routine
// @Success  200 {object} services.RoutineState
// @Router   /routine/edit [post]
func (h *RoutineHandler) BeginEdit(c *gin.Context) {
	h.respond(c, http.StatusOK, func(store *session.Store) (*services.RoutineState, error) {
		return h.editor.BeginEdit(c.Request.Context(), store)
	})
}

// AddEntry godoc
// @Summary  Add a class to a day
// @Tags     routine
// @Accept   json
// @Param    body body addEntryRequest true "Class"
// @Success  201 {object} services.RoutineState
// @Failure  400,409 {object} map[string]string
// @Router   /routine/entries [post]
func (h *RoutineHandler) AddEntry(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	h.respond(c, http.StatusCreated, func(store *session.Store) (*services.RoutineState, error) {
		return h.editor.AddEntry(c.Request.Context(), store, req.Day, req.StartTime, req.EndTime, req.Subject)
	})
}

// DeleteEntry godoc
// @Summary  Remove the class at a position of a day
// @Tags     routine
// @Param    day   path string true "Weekday"
// @Param    index path int    true "Position, zero based"
// @Success  200 {object} services.RoutineState
// @Router   /routine/entries/{day}/{index} [delete]
func (h *RoutineHandler) DeleteEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		handleError(c, domain.ErrEntryIndexOutOfRange)
		return
	}

	h.respond(c, http.StatusOK, func(store *session.Store) (*services.RoutineState, error) {
		return h.editor.DeleteEntry(c.Request.Context(), store, c.Param("day"), index)
	})
}

// Save godoc
// @Summary  Send the whole week to the backend
// @Tags     routine
// @Success  200 {object} services.RoutineState
// @Router   /routine/save [post]
func (h *RoutineHandler) Save(c *gin.Context) {
	h.respond(c, http.StatusOK, func(store *session.Store) (*services.RoutineState, error) {
		return h.editor.Save(c.Request.Context(), store)
	})
}

// Cancel godoc
// @Summary  Drop local edits and reload
// @Tags     routine
// @Success  200 {object} services.RoutineState
// @Router   /routine/cancel [post]
func (h *RoutineHandler) Cancel(c *gin.Context) {
	h.respond(c, http.StatusOK, func(store *session.Store) (*services.RoutineState, error) {
		return h.editor.CancelEdit(c.Request.Context(), store)
	})
}

func (h *RoutineHandler) respond(c *gin.Context, status int, op func(*session.Store) (*services.RoutineState, error)) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	state, err := op(store)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(status, state)
}
