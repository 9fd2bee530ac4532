package application

import (
	"errors"

	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrNotPurchased       = errors.New("course not purchased")
)

// notFound turns repository.ErrNotFound into a NotFound error with msg and
// anything else into an internal error.
func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.Wrap(apperror.KindNotFound, msg, err)
	}
	return apperror.Internal(err)
}
