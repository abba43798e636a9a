package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{
		svc: svc,
	}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.List)
		goals.POST("", h.Create)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary  Goals with the days left for each
// @Tags     goals
// @Success  200 {array} services.GoalView
// @Router   /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), store)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary  Add a goal
// @Tags     goals
// @Accept   json
// @Param    body body domain.NewGoalInput true "Goal"
// @Success  201 {array} services.GoalView
// @Router   /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	var req domain.NewGoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.svc.Create(c.Request.Context(), store, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// Update godoc
// @Summary  Change a goal, e.g. toggle completion or set progress
// @Tags     goals
// @Accept   json
// @Param    id   path string            true "Goal id"
// @Param    body body domain.GoalUpdate true "Fields to change"
// @Success  200 {array} services.GoalView
// @Router   /goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	var req domain.GoalUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.svc.Update(c.Request.Context(), store, c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete godoc
// @Summary  Remove a goal
// @Tags     goals
// @Param    id path string true "Goal id"
// @Success  200 {array} services.GoalView
// @Router   /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	list, err := h.svc.Delete(c.Request.Context(), store, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
