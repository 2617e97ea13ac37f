package domain

import (
	"errors"
	"time"
)

var ErrNoticeNotFound = errors.New("notice not found")

// Notice is a board publication (circular, result announcement) with an
// optional file attachment held in blob storage.
type Notice struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
