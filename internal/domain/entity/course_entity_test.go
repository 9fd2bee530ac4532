package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCourse() Course {
	return Course{
		ID:   "c1",
		Name: "Go Basics",
		CourseData: []Section{{
			ID:          "s1",
			Title:       "Intro",
			VideoURL:    "https://video/1",
			VideoLength: 12,
			Links:       []Link{{Title: "docs", URL: "https://go.dev"}},
			Suggestion:  "watch twice",
			Questions:   []Question{{ID: "q1", Question: "why?"}},
		}},
	}
}

func TestCoursePublicStripsContent(t *testing.T) {
	c := sampleCourse()
	pub := c.Public()

	s := pub.CourseData[0]
	assert.Equal(t, "Intro", s.Title)
	assert.Equal(t, float64(12), s.VideoLength)
	assert.Empty(t, s.VideoURL)
	assert.Empty(t, s.Links)
	assert.Empty(t, s.Suggestion)
	assert.Empty(t, s.Questions)

	// original untouched
	assert.Equal(t, "https://video/1", c.CourseData[0].VideoURL)
	assert.Len(t, c.CourseData[0].Questions, 1)
}

func TestCoursePublicHidesReviewerEmails(t *testing.T) {
	c := sampleCourse()
	c.Reviews = []Review{{
		ID:      "rv1",
		User:    UserRef{ID: "u1", Name: "Ann", Email: "ann@example.com"},
		Rating:  5,
		Replies: []Reply{{ID: "rp1", User: UserRef{ID: "a1", Name: "Admin", Email: "admin@example.com"}, Text: "thanks"}},
	}}
	pub := c.Public()

	r := pub.Reviews[0]
	assert.Equal(t, "Ann", r.User.Name)
	assert.Empty(t, r.User.Email)
	assert.Equal(t, "thanks", r.Replies[0].Text)
	assert.Empty(t, r.Replies[0].User.Email)

	assert.Equal(t, "ann@example.com", c.Reviews[0].User.Email)
	assert.Equal(t, "admin@example.com", c.Reviews[0].Replies[0].User.Email)
}

func TestCourseLookupsMutateInPlace(t *testing.T) {
	c := sampleCourse()
	q := c.Section("s1").Question("q1")
	q.Replies = append(q.Replies, Reply{ID: "r1", Text: "because"})
	assert.Len(t, c.CourseData[0].Questions[0].Replies, 1)

	assert.Nil(t, c.Section("nope"))
	assert.Nil(t, c.Section("s1").Question("nope"))
	assert.Nil(t, c.Review("nope"))
}

func TestRecomputeRating(t *testing.T) {
	c := Course{}
	c.RecomputeRating()
	assert.Zero(t, c.Ratings)

	c.Reviews = []Review{{Rating: 5}, {Rating: 4}}
	c.RecomputeRating()
	assert.InDelta(t, 4.5, c.Ratings, 1e-9)
}

func TestUserHasCourse(t *testing.T) {
	u := User{Courses: []string{"a", "b"}}
	assert.True(t, u.HasCourse("b"))
	assert.False(t, u.HasCourse("c"))
}
