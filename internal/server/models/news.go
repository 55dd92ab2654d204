package models

import "time"

// NewsItem is a published article. AuthorName is joined from the users
// table on read and is not a column of the news table itself.
type NewsItem struct {
	ID          string
	UserID      string
	Title       string
	Subtitle    string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	AuthorName  string
}
