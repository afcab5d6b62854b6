package models

import "time"

// Document is an uploaded file tracked for the dashboard document count.
type Document struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	FilePath  string    `json:"file_path"`
	FileSize  int64     `json:"file_size"`
	FileType  *string   `json:"file_type"`
	UserID    *int      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentInput is used for registering uploaded documents.
type DocumentInput struct {
	Name     string  `json:"name"`
	FilePath string  `json:"file_path"`
	FileSize int64   `json:"file_size"`
	FileType *string `json:"file_type"`
	UserID   *int    `json:"user_id"`
}

func (d *DocumentInput) Validate() string {
	if d.Name == "" {
		return "name is required"
	}
	if d.FilePath == "" {
		return "file_path is required"
	}
	if d.FileSize < 0 {
		return "file_size must be non-negative"
	}
	return ""
}
