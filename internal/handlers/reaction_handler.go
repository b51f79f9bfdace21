package handlers

import (
	"net/http"

	"xconfess_backend/internal/logger"
	"xconfess_backend/internal/middleware"
	"xconfess_backend/internal/models"
	"xconfess_backend/internal/services"
	"xconfess_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	*BaseHandler
	reactionService services.ReactionService
	authService     services.AuthService
}

func NewReactionHandler(base *BaseHandler, reactionService services.ReactionService, authService services.AuthService) *ReactionHandler {
	return &ReactionHandler{
		BaseHandler:     base,
		reactionService: reactionService,
		authService:     authService,
	}
}

func (h *ReactionHandler) RegisterRoutes(r *gin.RouterGroup) {
	reactions := r.Group("/reactions")
	reactions.Use(middleware.OptionalAuthMiddleware())
	{
		reactions.POST("", h.AddReaction)
	}

	confessions := r.Group("/confessions")
	{
		confessions.GET("/:id/reactions", h.GetConfessionReactions)
	}
}

func (h *ReactionHandler) AddReaction(c *gin.Context) {
	var req dto.CreateReactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reaction, err := h.reactionService.CreateReaction(&req, h.resolveReactor(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reaction)
}

// resolveReactor loads the acting user for an optionally-authenticated
// request. A token whose user no longer exists degrades to an anonymous
// reaction instead of failing the request.
func (h *ReactionHandler) resolveReactor(c *gin.Context) *models.User {
	userID := h.GetOptionalUserID(c)
	if userID == "" {
		return nil
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "acting user not resolvable, treating reaction as anonymous",
			"user_id", userID, "error", err.Error())
		return nil
	}
	return user
}

func (h *ReactionHandler) GetConfessionReactions(c *gin.Context) {
	reactions, err := h.reactionService.GetConfessionReactions(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reactions": reactions,
		"total":     len(reactions),
	})
}
