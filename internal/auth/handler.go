package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/authd/internal/apperrors"
	"github.com/kbukum/authd/internal/authctx"
	"github.com/kbukum/authd/internal/server"
	"github.com/kbukum/authd/internal/token"
)

// Handler exposes the auth flows over HTTP.
type Handler struct {
	service *Service
	tokens  *token.Service
}

// NewHandler creates the HTTP handler for the auth routes.
func NewHandler(service *Service, tokens *token.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// RegisterRoutes mounts the auth endpoints under /api/v1/auth.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/api/v1/auth")
	grp.POST("/register", h.Register)
	grp.POST("/login", h.Login)
	grp.GET("/profile", RequireAuth(h.tokens), h.Profile)
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}

	view, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, view)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}

// Profile handles GET /api/v1/auth/profile. It runs behind RequireAuth, so
// the claims are guaranteed to be in the request context.
func (h *Handler) Profile(c *gin.Context) {
	claims, err := authctx.GetOrError[*token.Claims](c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.Unauthorized().WithReason(apperrors.ReasonMissingHeader))
		return
	}

	view, err := h.service.Profile(c.Request.Context(), claims.UserID())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, view)
}
