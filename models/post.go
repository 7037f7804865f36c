// File: /models/post.go
package models

import (
	"time"
)

// Post is a discussion thread scoped to an event. Visible to the
// organizer and participants of that event only.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;index"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191"`
	Title     string    `json:"title" gorm:"not null;size:255"`
	Body      string    `json:"body" gorm:"not null;type:text"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Event   Event   `json:"event" gorm:"foreignKey:EventID"`
	Author  User    `json:"author" gorm:"foreignKey:AuthorID"`
	Replies []Reply `json:"replies" gorm:"foreignKey:PostID"`
}

type Reply struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191"`
	Body      string    `json:"body" gorm:"not null;type:text"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Post   Post `json:"post" gorm:"foreignKey:PostID"`
	Author User `json:"author" gorm:"foreignKey:AuthorID"`
}
