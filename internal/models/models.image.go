// FilePath: internal/models/models.image.go
package models

import "time"

// Image is a named binary blob, independent of the other entities.
// Name is unique across all images.
type Image struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Data      []byte    `json:"-" db:"data"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	Size      int64     `json:"size" db:"size"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
