package middleware

import (
	"context"
	"errors"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

// CtxUserIDKey is the gin key holding the authenticated user id, read by the
// rate limiter and the request logger.
const CtxUserIDKey = "userID"

type userCtxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user attached by Auth, or nil.
func UserFromContext(ctx context.Context) *entity.User {
	u, _ := ctx.Value(userCtxKey{}).(*entity.User)
	return u
}

// Auth validates the access_token cookie and requires a live session for its
// user. The session snapshot, not the token, is what handlers see.
func Auth(sessions repository.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessCookie)
		if err != nil || token == "" {
			response.Fail(c, apperror.Unauthenticated("please login to access this resource"))
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrMissingSecret) {
				response.Fail(c, apperror.Internal(err))
				return
			}
			response.Fail(c, apperror.Wrap(apperror.KindAuthentication, "access token is not valid", err))
			return
		}
		u, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Fail(c, apperror.Unauthenticated("please login to access this resource"))
				return
			}
			response.Fail(c, apperror.Internal(err))
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), u))
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// AuthorizeRoles rejects users whose role is not listed. It must run after Auth.
func AuthorizeRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := UserFromContext(c.Request.Context())
		if u == nil {
			response.Fail(c, apperror.Unauthenticated("please login to access this resource"))
			return
		}
		if !slices.Contains(roles, u.Role) {
			response.Fail(c, apperror.Forbidden("role "+string(u.Role)+" is not allowed to access this resource"))
			return
		}
		c.Next()
	}
}
