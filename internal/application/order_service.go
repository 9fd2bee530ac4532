package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/mailer"
	"github.com/oksasatya/go-lms-api/pkg/mailer/templates"
)

type OrderService struct {
	Orders   repo.OrderRepository
	Users    repo.UserRepository
	Courses  repo.CourseRepository
	Sessions repo.SessionStore
	Catalog  *CourseService
	Mail     mailer.Dispatcher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, users repo.UserRepository, courses repo.CourseRepository, sessions repo.SessionStore, catalog *CourseService, mail mailer.Dispatcher, cfg *config.Config, logger *logrus.Logger) *OrderService {
	return &OrderService{
		Orders:   orders,
		Users:    users,
		Courses:  courses,
		Sessions: sessions,
		Catalog:  catalog,
		Mail:     mail,
		Cfg:      cfg,
		Logger:   helpers.OrNop(logger),
	}
}

type OrderInput struct {
	CourseID    string          `json:"course_id" binding:"required"`
	PaymentInfo json.RawMessage `json:"payment_info"`
}

var errAlreadyPurchased = apperror.Validation("you have already purchased this course")

// Create places an order. Storage links the course and bumps its counter in
// one transaction; the session, cache and confirmation email follow and are
// not rolled back if they fail.
func (s *OrderService) Create(ctx context.Context, user *entity.User, in OrderInput) (*entity.Order, error) {
	if user.HasCourse(in.CourseID) {
		return nil, errAlreadyPurchased
	}
	course, err := s.Courses.GetByID(ctx, in.CourseID)
	if err != nil {
		return nil, notFound(err, "course not found")
	}

	o := &entity.Order{UserID: user.ID, CourseID: course.ID, PaymentInfo: in.PaymentInfo}
	n := &entity.Notification{
		UserID:  user.ID,
		Title:   "New Order",
		Message: fmt.Sprintf("You have a new order from %s", course.Name),
	}
	if err := s.Orders.Place(ctx, o, n); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, errAlreadyPurchased
		}
		return nil, notFound(err, "course not found")
	}
	incr(metricOrders)
	s.Logger.WithFields(logrus.Fields{"order_id": o.ID, "user_id": user.ID, "course_id": course.ID}).Info("order placed")

	if fresh, err := s.Users.GetByID(ctx, user.ID); err != nil {
		s.Logger.WithError(err).WithField("user_id", user.ID).Warn("reload buyer failed")
	} else if err := s.Sessions.Set(ctx, fresh); err != nil {
		s.Logger.WithError(err).WithField("user_id", user.ID).Warn("session refresh after order failed")
	}
	if s.Catalog != nil {
		s.Catalog.Invalidate(ctx, course.ID)
	}

	job := mailer.EmailJob{
		To:       user.Email,
		Template: templates.OrderConfirmation,
		Data:     templates.NewOrderConfirmationData(s.Cfg, user.Name, user.Email, o.ID, course.Name, course.Price, o.CreatedAt),
	}
	if err := s.Mail.Dispatch(ctx, job); err != nil {
		incr(metricEmailFailures)
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order confirmation email failed")
		return o, apperror.Dependency("order placed but the confirmation email could not be sent", err)
	}
	return o, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return orders, nil
}
