package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/mailer"
	"github.com/oksasatya/go-lms-api/pkg/mailer/templates"
)

const (
	// CatalogCacheKey holds the public course list.
	CatalogCacheKey = "allCourses"
	thumbnailFolder = "courses"
)

// CourseCacheKey holds one public course.
func CourseCacheKey(id string) string { return "course:" + id }

type CourseService struct {
	Courses       repo.CourseRepository
	Notifications repo.NotificationRepository
	Media         repo.MediaStore
	Cache         repo.Cache
	Index         repo.SearchIndex
	Mail          mailer.Dispatcher
	Cfg           *config.Config
	Logger        *logrus.Logger
	CacheTTL      time.Duration

	Now func() time.Time
}

func NewCourseService(courses repo.CourseRepository, notifications repo.NotificationRepository, media repo.MediaStore, cache repo.Cache, search repo.SearchIndex, mail mailer.Dispatcher, cfg *config.Config, logger *logrus.Logger) *CourseService {
	ttl := 7 * 24 * time.Hour
	if cfg != nil && cfg.CatalogCacheTTL > 0 {
		ttl = cfg.CatalogCacheTTL
	}
	return &CourseService{
		Courses:       courses,
		Notifications: notifications,
		Media:         media,
		Cache:         cache,
		Index:         search,
		Mail:          mail,
		Cfg:           cfg,
		Logger:        helpers.OrNop(logger),
		CacheTTL:      ttl,
		Now:           time.Now,
	}
}

// CourseInput is the create/edit payload. Thumbnail is either a data URI to
// upload or the current thumbnail URL to keep.
type CourseInput struct {
	Name           string           `json:"name" binding:"required,max=200"`
	Description    string           `json:"description" binding:"required"`
	Price          float64          `json:"price" binding:"gte=0"`
	EstimatedPrice *float64         `json:"estimated_price" binding:"omitempty,gte=0"`
	Thumbnail      string           `json:"thumbnail"`
	Tags           string           `json:"tags" binding:"required"`
	Level          string           `json:"level" binding:"required"`
	DemoURL        string           `json:"demo_url" binding:"required"`
	Benefits       []entity.Title   `json:"benefits" binding:"dive"`
	Prerequisites  []entity.Title   `json:"prerequisites" binding:"dive"`
	CourseData     []entity.Section `json:"course_data" binding:"dive"`
}

type QuestionInput struct {
	Question  string `json:"question" binding:"required"`
	CourseID  string `json:"course_id" binding:"required"`
	ContentID string `json:"content_id" binding:"required"`
}

type AnswerInput struct {
	Answer     string `json:"answer" binding:"required"`
	CourseID   string `json:"course_id" binding:"required"`
	ContentID  string `json:"content_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
}

type ReviewInput struct {
	Review string `json:"review" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

type ReplyInput struct {
	Comment  string `json:"comment" binding:"required"`
	CourseID string `json:"course_id" binding:"required"`
	ReviewID string `json:"review_id" binding:"required"`
}

func (s *CourseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (in CourseInput) apply(c *entity.Course) {
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.Price = in.Price
	c.EstimatedPrice = in.EstimatedPrice
	c.Tags = in.Tags
	c.Level = in.Level
	c.DemoURL = in.DemoURL
	c.Benefits = nonNil(in.Benefits)
	c.Prerequisites = nonNil(in.Prerequisites)

	// keep Q&A of sections that survive the edit
	prev := make(map[string][]entity.Question, len(c.CourseData))
	for _, sec := range c.CourseData {
		prev[sec.ID] = sec.Questions
	}
	sections := make([]entity.Section, len(in.CourseData))
	for i, sec := range in.CourseData {
		if sec.ID == "" {
			sec.ID = uuid.NewString()
		}
		sec.Questions = nonNil(prev[sec.ID])
		sec.Links = nonNil(sec.Links)
		sections[i] = sec
	}
	c.CourseData = sections
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *CourseService) Create(ctx context.Context, in CourseInput) (*entity.Course, error) {
	c := &entity.Course{Reviews: []entity.Review{}}
	in.apply(c)
	if isDataURI(in.Thumbnail) {
		m, err := uploadMedia(ctx, s.Media, thumbnailFolder, in.Thumbnail)
		if err != nil {
			return nil, err
		}
		c.Thumbnail = &m
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		if c.Thumbnail != nil {
			_ = s.Media.Delete(ctx, c.Thumbnail.PublicID)
		}
		return nil, apperror.Internal(err)
	}
	s.invalidate(ctx, c.ID)
	s.indexCourse(ctx, c)
	return c, nil
}

// Edit replaces the editable fields. A new thumbnail is uploaded before the
// write and the previous asset deleted after it, so exactly one stays referenced.
func (s *CourseService) Edit(ctx context.Context, id string, in CourseInput) (*entity.Course, error) {
	if _, err := s.Courses.GetByID(ctx, id); err != nil {
		return nil, notFound(err, "course not found")
	}
	var fresh *entity.Media
	if isDataURI(in.Thumbnail) {
		m, err := uploadMedia(ctx, s.Media, thumbnailFolder, in.Thumbnail)
		if err != nil {
			return nil, err
		}
		fresh = &m
	}

	var old *entity.Media
	c, err := s.Courses.Mutate(ctx, id, func(c *entity.Course) error {
		in.apply(c)
		if fresh != nil {
			old = c.Thumbnail
			c.Thumbnail = fresh
		}
		return nil
	})
	if err != nil {
		if fresh != nil {
			_ = s.Media.Delete(ctx, fresh.PublicID)
		}
		return nil, notFound(err, "course not found")
	}
	s.invalidate(ctx, c.ID)
	s.indexCourse(ctx, c)

	if err := deleteMedia(ctx, s.Media, old); err != nil {
		s.Logger.WithError(err).WithField("course_id", id).Warn("old thumbnail delete failed")
		return c, err
	}
	return c, nil
}

// Get returns the public view of one course, cached.
func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	var cached entity.Course
	if s.cacheGet(ctx, CourseCacheKey(id), &cached) {
		return &cached, nil
	}
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "course not found")
	}
	pub := c.Public()
	s.cacheSet(ctx, CourseCacheKey(id), pub)
	return &pub, nil
}

// List returns the public catalog, cached under CatalogCacheKey.
func (s *CourseService) List(ctx context.Context) ([]entity.Course, error) {
	var cached []entity.Course
	if s.cacheGet(ctx, CatalogCacheKey, &cached) {
		return cached, nil
	}
	courses, err := s.Courses.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]entity.Course, len(courses))
	for i, c := range courses {
		out[i] = c.Public()
	}
	s.cacheSet(ctx, CatalogCacheKey, out)
	return out, nil
}

// ListAll returns every course with full content for the admin dashboard.
func (s *CourseService) ListAll(ctx context.Context) ([]entity.Course, error) {
	courses, err := s.Courses.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return courses, nil
}

// Content returns the full course_data to a purchaser.
func (s *CourseService) Content(ctx context.Context, user *entity.User, id string) ([]entity.Section, error) {
	if user == nil || !user.HasCourse(id) {
		return nil, apperror.Wrap(apperror.KindAuthorization, "you are not eligible to access this course", ErrNotPurchased)
	}
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "course not found")
	}
	return c.CourseData, nil
}

func (s *CourseService) AddQuestion(ctx context.Context, user *entity.User, in QuestionInput) (*entity.Course, error) {
	var section string
	c, err := s.Courses.Mutate(ctx, in.CourseID, func(c *entity.Course) error {
		sec := c.Section(in.ContentID)
		if sec == nil {
			return apperror.NotFound("invalid content id")
		}
		section = sec.Title
		sec.Questions = append(sec.Questions, entity.Question{
			ID:        uuid.NewString(),
			User:      user.Ref(),
			Question:  in.Question,
			Replies:   []entity.Reply{},
			CreatedAt: s.now(),
		})
		return nil
	})
	if err != nil {
		return nil, mutateErr(err)
	}
	s.notify(ctx, user.ID, "New Question Received", fmt.Sprintf("You have a new question in %s", section))
	return c, nil
}

// AddAnswer appends a reply to a question. The question author gets an email
// unless they answered themselves, in which case admins get a notification.
func (s *CourseService) AddAnswer(ctx context.Context, user *entity.User, in AnswerInput) (*entity.Course, error) {
	var (
		question entity.Question
		section  string
	)
	c, err := s.Courses.Mutate(ctx, in.CourseID, func(c *entity.Course) error {
		sec := c.Section(in.ContentID)
		if sec == nil {
			return apperror.NotFound("invalid content id")
		}
		q := sec.Question(in.QuestionID)
		if q == nil {
			return apperror.NotFound("invalid question id")
		}
		q.Replies = append(q.Replies, entity.Reply{
			ID:        uuid.NewString(),
			User:      user.Ref(),
			Text:      in.Answer,
			CreatedAt: s.now(),
		})
		question, section = *q, sec.Title
		return nil
	})
	if err != nil {
		return nil, mutateErr(err)
	}

	if question.User.ID == user.ID {
		s.notify(ctx, user.ID, "New Question Reply Received", fmt.Sprintf("You have a new question reply in %s", section))
		return c, nil
	}
	job := mailer.EmailJob{
		To:       question.User.Email,
		Template: templates.QuestionReply,
		Data:     templates.NewQuestionReplyData(s.Cfg, question.User.Name, question.User.Email, c.Name, question.Question, in.Answer),
	}
	if err := s.Mail.Dispatch(ctx, job); err != nil {
		incr(metricEmailFailures)
		s.Logger.WithError(err).WithField("course_id", c.ID).Warn("question reply email failed")
		return c, apperror.Dependency("answer saved but the notification email could not be sent", err)
	}
	return c, nil
}

// AddReview is open to purchasers only and refreshes the average rating.
func (s *CourseService) AddReview(ctx context.Context, user *entity.User, courseID string, in ReviewInput) (*entity.Course, error) {
	if user == nil || !user.HasCourse(courseID) {
		return nil, apperror.Wrap(apperror.KindAuthorization, "you are not eligible to access this course", ErrNotPurchased)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}
	c, err := s.Courses.Mutate(ctx, courseID, func(c *entity.Course) error {
		c.Reviews = append(c.Reviews, entity.Review{
			ID:        uuid.NewString(),
			User:      user.Ref(),
			Rating:    in.Rating,
			Comment:   in.Review,
			Replies:   []entity.Reply{},
			CreatedAt: s.now(),
		})
		c.RecomputeRating()
		return nil
	})
	if err != nil {
		return nil, mutateErr(err)
	}
	s.invalidate(ctx, c.ID)
	s.notify(ctx, user.ID, "New Review Received", fmt.Sprintf("%s has given a review in %s", user.Name, c.Name))
	return c, nil
}

func (s *CourseService) AddReply(ctx context.Context, user *entity.User, in ReplyInput) (*entity.Course, error) {
	c, err := s.Courses.Mutate(ctx, in.CourseID, func(c *entity.Course) error {
		r := c.Review(in.ReviewID)
		if r == nil {
			return apperror.NotFound("review not found")
		}
		r.Replies = append(r.Replies, entity.Reply{
			ID:        uuid.NewString(),
			User:      user.Ref(),
			Text:      in.Comment,
			CreatedAt: s.now(),
		})
		return nil
	})
	if err != nil {
		return nil, mutateErr(err)
	}
	s.invalidate(ctx, c.ID)
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "course not found")
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return notFound(err, "course not found")
	}
	s.invalidate(ctx, id)
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("course_id", id).Warn("course unindex failed")
		}
	}
	if err := deleteMedia(ctx, s.Media, c.Thumbnail); err != nil {
		s.Logger.WithError(err).WithField("course_id", id).Warn("thumbnail delete failed")
		return err
	}
	return nil
}

// Search runs a full-text query over the catalog and returns public views.
func (s *CourseService) Search(ctx context.Context, q string, size int) ([]entity.Course, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.Course{}, nil
	}
	ids, err := s.Index.Search(ctx, q, clampSize(size))
	if err != nil {
		return nil, apperror.Dependency("search unavailable", err)
	}
	courses, err := s.Courses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	ordered := orderByIDs(ids, courses, func(c entity.Course) string { return c.ID })
	for i := range ordered {
		ordered[i] = ordered[i].Public()
	}
	return ordered, nil
}

// Invalidate drops the cached views touched by a change to course id.
func (s *CourseService) Invalidate(ctx context.Context, id string) { s.invalidate(ctx, id) }

func (s *CourseService) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, CatalogCacheKey, CourseCacheKey(id)); err != nil {
		s.Logger.WithError(err).WithField("course_id", id).Warn("cache invalidation failed")
	}
}

func (s *CourseService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.Cache == nil {
		return false
	}
	ok, err := s.Cache.Get(ctx, key, dest)
	if err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	if ok {
		incr(metricCacheHits)
	} else {
		incr(metricCacheMisses)
	}
	return ok
}

func (s *CourseService) cacheSet(ctx context.Context, key string, v any) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, v, s.CacheTTL); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

type courseDoc struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tags        string  `json:"tags"`
	Level       string  `json:"level"`
	Price       float64 `json:"price"`
}

func (s *CourseService) indexCourse(ctx context.Context, c *entity.Course) {
	if s.Index == nil {
		return
	}
	doc := courseDoc{ID: c.ID, Name: c.Name, Description: c.Description, Tags: c.Tags, Level: c.Level, Price: c.Price}
	if err := s.Index.Index(ctx, c.ID, doc); err != nil {
		s.Logger.WithError(err).WithField("course_id", c.ID).Warn("course index failed")
	}
}

func (s *CourseService) notify(ctx context.Context, userID, title, message string) {
	n := &entity.Notification{UserID: userID, Title: title, Message: message}
	if err := s.Notifications.Create(ctx, n); err != nil {
		s.Logger.WithError(err).WithField("title", title).Warn("notification create failed")
	}
}

// mutateErr keeps errors raised inside a MutateFunc and maps storage errors.
func mutateErr(err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	return notFound(err, "course not found")
}
