package entity

import "time"

type LayoutType string

const (
	LayoutBanner     LayoutType = "Banner"
	LayoutFAQ        LayoutType = "FAQ"
	LayoutCategories LayoutType = "Categories"
)

func (t LayoutType) Valid() bool {
	switch t {
	case LayoutBanner, LayoutFAQ, LayoutCategories:
		return true
	}
	return false
}

// Layout holds the storefront content blocks; one row per type.
type Layout struct {
	ID         string     `json:"id"`
	Type       LayoutType `json:"type"`
	FAQ        []FAQItem  `json:"faq,omitempty"`
	Categories []Title    `json:"categories,omitempty"`
	Banner     *Banner    `json:"banner,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Banner struct {
	Image    Media  `json:"image"`
	Title    string `json:"title"`
	SubTitle string `json:"sub_title"`
}
