package models

import "time"

type File struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"-"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	OwnerID    int64     `json:"owner_id"`
	FolderID   *string   `json:"folder_id"`
	PublicURL  *string   `json:"public_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
