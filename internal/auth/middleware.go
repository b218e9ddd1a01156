package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authd/internal/apperrors"
	"github.com/kbukum/authd/internal/authctx"
	"github.com/kbukum/authd/internal/server"
	"github.com/kbukum/authd/internal/token"
)

const bearerScheme = "Bearer"

// RequireAuth is the access gate: it validates the Bearer token before the
// wrapped handler runs. On any rejection it short-circuits with the same
// generic unauthorized body; the wrapped handler is never invoked. On
// success the validated claims are stored in the request context for
// downstream handlers.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, appErr := extractBearer(c.GetHeader("Authorization"))
		if appErr != nil {
			server.RespondWithError(c, appErr)
			c.Abort()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			server.RespondWithError(c, apperrors.Unauthorized().WithReason(rejectionReason(err)))
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		c.Next()
	}
}

// extractBearer pulls the token out of an Authorization header, expecting
// the literal "Bearer " scheme prefix.
func extractBearer(header string) (string, *apperrors.AppError) {
	if header == "" {
		return "", apperrors.Unauthorized().WithReason(apperrors.ReasonMissingHeader)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", apperrors.Unauthorized().WithReason(apperrors.ReasonMalformedHeader)
	}
	return parts[1], nil
}

// rejectionReason maps token validation failures onto log-only sub-reasons.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return apperrors.ReasonTokenExpired
	case errors.Is(err, token.ErrInvalidSignature):
		return apperrors.ReasonInvalidSignature
	default:
		return apperrors.ReasonMalformedToken
	}
}
