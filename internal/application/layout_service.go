package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

const layoutFolder = "layout"

// LayoutService manages the storefront blocks: one Banner, one FAQ and one
// Categories document.
type LayoutService struct {
	Layouts repo.LayoutRepository
	Media   repo.MediaStore
	Logger  *logrus.Logger
}

func NewLayoutService(layouts repo.LayoutRepository, media repo.MediaStore, logger *logrus.Logger) *LayoutService {
	return &LayoutService{Layouts: layouts, Media: media, Logger: helpers.OrNop(logger)}
}

type LayoutInput struct {
	Type       string           `json:"type" binding:"required,layouttype"`
	Image      string           `json:"image"`
	Title      string           `json:"title"`
	SubTitle   string           `json:"sub_title"`
	FAQ        []entity.FAQItem `json:"faq"`
	Categories []entity.Title   `json:"categories"`
}

func (s *LayoutService) Create(ctx context.Context, in LayoutInput) (*entity.Layout, error) {
	t := entity.LayoutType(in.Type)
	if !t.Valid() {
		return nil, apperror.Validation("invalid layout type")
	}
	if _, err := s.Layouts.GetByType(ctx, t); err == nil {
		return nil, apperror.Validation(fmt.Sprintf("%s already exist", t))
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	l := &entity.Layout{Type: t}
	switch t {
	case entity.LayoutBanner:
		if !isDataURI(in.Image) {
			return nil, apperror.Validation("banner image is required")
		}
		m, err := uploadMedia(ctx, s.Media, layoutFolder, in.Image)
		if err != nil {
			return nil, err
		}
		l.Banner = &entity.Banner{Image: m, Title: in.Title, SubTitle: in.SubTitle}
	case entity.LayoutFAQ:
		l.FAQ = nonNil(in.FAQ)
	case entity.LayoutCategories:
		l.Categories = nonNil(in.Categories)
	}

	if err := s.Layouts.Create(ctx, l); err != nil {
		if l.Banner != nil {
			_ = s.Media.Delete(ctx, l.Banner.Image.PublicID)
		}
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Validation(fmt.Sprintf("%s already exist", t))
		}
		return nil, apperror.Internal(err)
	}
	return l, nil
}

// Edit replaces the block of in.Type. A banner keeps its image unless a new
// data URI is sent.
func (s *LayoutService) Edit(ctx context.Context, in LayoutInput) (*entity.Layout, error) {
	t := entity.LayoutType(in.Type)
	if !t.Valid() {
		return nil, apperror.Validation("invalid layout type")
	}
	l, err := s.Layouts.GetByType(ctx, t)
	if err != nil {
		return nil, notFound(err, "layout not found")
	}

	var old *entity.Media
	switch t {
	case entity.LayoutBanner:
		banner := entity.Banner{Title: in.Title, SubTitle: in.SubTitle}
		if l.Banner != nil {
			banner.Image = l.Banner.Image
		}
		if isDataURI(in.Image) {
			m, err := uploadMedia(ctx, s.Media, layoutFolder, in.Image)
			if err != nil {
				return nil, err
			}
			if l.Banner != nil {
				prev := l.Banner.Image
				old = &prev
			}
			banner.Image = m
		}
		l.Banner = &banner
	case entity.LayoutFAQ:
		l.FAQ = nonNil(in.FAQ)
	case entity.LayoutCategories:
		l.Categories = nonNil(in.Categories)
	}

	if err := s.Layouts.Update(ctx, l); err != nil {
		return nil, notFound(err, "layout not found")
	}
	if err := deleteMedia(ctx, s.Media, old); err != nil {
		s.Logger.WithError(err).WithField("type", t).Warn("old banner image delete failed")
		return l, err
	}
	return l, nil
}

func (s *LayoutService) Get(ctx context.Context, typ string) (*entity.Layout, error) {
	t := entity.LayoutType(typ)
	if !t.Valid() {
		return nil, apperror.Validation("invalid layout type")
	}
	l, err := s.Layouts.GetByType(ctx, t)
	if err != nil {
		return nil, notFound(err, "layout not found")
	}
	return l, nil
}
