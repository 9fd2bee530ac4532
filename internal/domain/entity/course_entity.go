package entity

import "time"

type Course struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	EstimatedPrice *float64  `json:"estimated_price,omitempty"`
	Thumbnail      *Media    `json:"thumbnail,omitempty"`
	Tags           string    `json:"tags"`
	Level          string    `json:"level"`
	DemoURL        string    `json:"demo_url"`
	Benefits       []Title   `json:"benefits"`
	Prerequisites  []Title   `json:"prerequisites"`
	CourseData     []Section `json:"course_data"`
	Reviews        []Review  `json:"reviews"`
	Ratings        float64   `json:"ratings"`
	Purchased      int       `json:"purchased"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Title struct {
	Title string `json:"title"`
}

// Section is one lesson of a course.
type Section struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"video_url,omitempty"`
	VideoSection string     `json:"video_section"`
	VideoLength  float64    `json:"video_length"`
	VideoPlayer  string     `json:"video_player"`
	Links        []Link     `json:"links,omitempty"`
	Suggestion   string     `json:"suggestion,omitempty"`
	Questions    []Question `json:"questions,omitempty"`
}

type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Question struct {
	ID        string    `json:"id"`
	User      UserRef   `json:"user"`
	Question  string    `json:"question"`
	Replies   []Reply   `json:"question_replies"`
	CreatedAt time.Time `json:"created_at"`
}

type Reply struct {
	ID        string    `json:"id"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        string    `json:"id"`
	User      UserRef   `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Replies   []Reply   `json:"comment_replies"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns a copy safe for the unauthenticated catalog. Sections lose
// their video reference, links, suggestion and Q&A thread, and review authors
// lose their email.
func (c Course) Public() Course {
	out := c
	out.CourseData = make([]Section, len(c.CourseData))
	for i, s := range c.CourseData {
		out.CourseData[i] = Section{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			VideoSection: s.VideoSection,
			VideoLength:  s.VideoLength,
			VideoPlayer:  s.VideoPlayer,
		}
	}
	out.Reviews = make([]Review, len(c.Reviews))
	for i, r := range c.Reviews {
		r.User.Email = ""
		replies := make([]Reply, len(r.Replies))
		for j, rp := range r.Replies {
			rp.User.Email = ""
			replies[j] = rp
		}
		r.Replies = replies
		out.Reviews[i] = r
	}
	return out
}

// Section returns a pointer into CourseData so callers can mutate in place.
func (c *Course) Section(id string) *Section {
	for i := range c.CourseData {
		if c.CourseData[i].ID == id {
			return &c.CourseData[i]
		}
	}
	return nil
}

func (c *Course) Review(id string) *Review {
	for i := range c.Reviews {
		if c.Reviews[i].ID == id {
			return &c.Reviews[i]
		}
	}
	return nil
}

func (s *Section) Question(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// RecomputeRating sets Ratings to the mean review rating, 0 without reviews.
func (c *Course) RecomputeRating() {
	if len(c.Reviews) == 0 {
		c.Ratings = 0
		return
	}
	total := 0
	for _, r := range c.Reviews {
		total += r.Rating
	}
	c.Ratings = float64(total) / float64(len(c.Reviews))
}
