package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/response"
	"github.com/oksasatya/go-lms-api/pkg/validation"
)

// bindJSON decodes and validates the body into dst, writing the 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Fail(c, validation.BindError(err))
		return false
	}
	return true
}

// currentUser returns the session user put in the request context by middleware.Auth.
func currentUser(c *gin.Context) (*entity.User, bool) {
	u := middleware.UserFromContext(c.Request.Context())
	if u == nil {
		response.Fail(c, apperror.Unauthenticated("please login to access this resource"))
		return nil, false
	}
	return u, true
}

func querySize(c *gin.Context) int {
	n, _ := strconv.Atoi(c.Query("size"))
	return n
}

// failSaved reports err, keeping v in the envelope when the write itself went through.
func failSaved[T any](c *gin.Context, v *T, err error) {
	if v != nil {
		response.FailWith(c, err, v)
		return
	}
	response.Fail(c, err)
}
