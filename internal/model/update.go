package model

import "time"

type UpdateCategory string

const (
	CategoryEvent     UpdateCategory = "Event"
	CategoryNotice    UpdateCategory = "Notice"
	CategorySpiritual UpdateCategory = "Spiritual"
)

func (c UpdateCategory) Valid() bool {
	switch c {
	case CategoryEvent, CategoryNotice, CategorySpiritual:
		return true
	}
	return false
}

type UpdatePost struct {
	ID       string         `json:"id"`
	UserID   string         `json:"userId"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Category UpdateCategory `json:"category"`
	Date     time.Time      `json:"date"`
	Image    string         `json:"image,omitempty"` // Banner reference

	// Computed fields (not persisted)
	HTMLContent string `json:"-"`
	ImageURL    string `json:"-"`
}
