package handlers

import (
	"net/http"

	"xconfess_backend/internal/middleware"
	"xconfess_backend/internal/services"
	"xconfess_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ConfessionHandler struct {
	*BaseHandler
	confessionService services.ConfessionService
}

func NewConfessionHandler(base *BaseHandler, confessionService services.ConfessionService) *ConfessionHandler {
	return &ConfessionHandler{
		BaseHandler:       base,
		confessionService: confessionService,
	}
}

func (h *ConfessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	confessions := r.Group("/confessions")
	confessions.Use(middleware.OptionalAuthMiddleware())
	{
		confessions.POST("", h.CreateConfession)
		confessions.GET("", h.ListConfessions)
		confessions.GET("/:id", h.GetConfession)
	}

	owned := r.Group("/confessions")
	owned.Use(middleware.AuthMiddleware())
	{
		owned.DELETE("/:id", h.DeleteConfession)
	}
}

func (h *ConfessionHandler) CreateConfession(c *gin.Context) {
	var req dto.CreateConfessionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	var authorID *string
	if userID := h.GetOptionalUserID(c); userID != "" {
		authorID = &userID
	}

	confession, err := h.confessionService.CreateConfession(&req, authorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confession)
}

func (h *ConfessionHandler) GetConfession(c *gin.Context) {
	confession, err := h.confessionService.GetConfession(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, confession)
}

func (h *ConfessionHandler) ListConfessions(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.confessionService.ListConfessions(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ConfessionHandler) DeleteConfession(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.confessionService.DeleteConfession(c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession deleted"})
}
