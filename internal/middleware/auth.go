package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/auth"
	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/pkg/response"
)

// Context keys set by AuthRequired.
const (
	ContextUserID      = "user_id"
	ContextSubject     = "subject"
	ContextRole        = "role"
	ContextAccessToken = "access_token"
)

const bearerPrefix = "Bearer "

// SubjectResolver turns a token subject into an account record.
type SubjectResolver interface {
	GetByEmail(email string) (*models.User, error)
}

// BearerToken extracts the credential from the Authorization header. An
// absent header or a non-Bearer scheme both yield the empty string.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):]
	}
	return ""
}

// AuthRequired validates the bearer access token and attaches the principal
// to the request context. It never touches the refresh store; only the
// validator consults the denylist.
func AuthRequired(validator *auth.Validator, users SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)

		decision, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			response.ServerError(c, "token validation unavailable")
			c.Abort()
			return
		}
		if decision.Outcome != auth.OutcomeValid {
			response.Unauthorized(c, rejectionMessage(decision.Outcome))
			c.Abort()
			return
		}

		user, err := users.GetByEmail(decision.Subject)
		if err != nil {
			var appErr *response.AppError
			if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusNotFound {
				response.Unauthorized(c, "unknown token subject")
			} else {
				response.ServerError(c, "user lookup failed")
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Unauthorized(c, "account is disabled")
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextSubject, decision.Subject)
		c.Set(ContextRole, decision.Role)
		c.Set(ContextAccessToken, token)

		c.Next()
	}
}

func rejectionMessage(outcome auth.Outcome) string {
	switch outcome {
	case auth.OutcomeMissing:
		return "authorization header required"
	case auth.OutcomeExpired:
		return "token expired"
	case auth.OutcomeDenied:
		return "token has been revoked"
	default:
		return "invalid token"
	}
}

// AdminRequired rejects principals without the ADMIN role. It must run
// after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != models.RoleAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetSubject gets the current token subject from context.
func GetSubject(c *gin.Context) string {
	if subject, exists := c.Get(ContextSubject); exists {
		return subject.(string)
	}
	return ""
}

// GetRole gets the current user role from context.
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
