package model

import "time"

// File is one submitted upload: metadata plus its three categorizations.
// This is a pure domain model with no database-specific dependencies or tags.
type File struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	FiscalYearID string     `json:"fiscal_year_id"`
	Source       string     `json:"source"`
	GrantType    string     `json:"grant_type"`
	Remarks      string     `json:"remarks"`
	UploadedBy   *string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Documents    []Document `json:"documents"`
}

// Document is a single stored attachment of a File.
type Document struct {
	ID               string    `json:"id"`
	FileID           string    `json:"file_id"`
	Category         string    `json:"category"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	StoragePath      string    `json:"storage_path"`
	Size             int64     `json:"size"`
	ContentType      string    `json:"content_type"`
	CreatedAt        time.Time `json:"created_at"`
}
