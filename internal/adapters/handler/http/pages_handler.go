package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

func registerPageRoutes(router *gin.RouterGroup) {
	router.GET("/pages/:slug", legalPage)
}

// legalPage godoc
// @Summary  Privacy policy or terms of use
// @Tags     pages
// @Param    slug path string true "privacy or terms"
// @Success  200 {object} domain.LegalPage
// @Router   /pages/{slug} [get]
func legalPage(c *gin.Context) {
	page, err := domain.LegalPageBySlug(c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
