package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

type ContactHandler struct {
	svc *services.ContactService
}

func NewContactHandler(svc *services.ContactService) *ContactHandler {
	return &ContactHandler{
		svc: svc,
	}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/contact", h.Form)
	router.POST("/contact", h.Submit)
}

// Form godoc
// @Summary  Contact form pre-filled from the profile
// @Tags     contact
// @Success  200 {object} domain.ContactMessage
// @Router   /contact [get]
func (h *ContactHandler) Form(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Form(store))
}

// Submit godoc
// @Summary  Send a message to the team
// @Tags     contact
// @Accept   json
// @Param    body body domain.ContactMessage true "Message"
// @Success  201 {object} messageResponse
// @Router   /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	var req domain.ContactMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Submit(c.Request.Context(), store, req); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "Message sent successfully"})
}
