package model

import (
	"time"
)

// File describes a media payload written to object storage.
type File struct {
	UserID       string    // Uploader
	Kind         MediaKind
	Filename     string // Generated object name
	OriginalName string
	MimeType     string
	Size         int64
	StoragePath  string
	URL          string // Stored payload reference
	CreatedAt    time.Time
}

// Media converts the stored file into an attachment reference.
func (f *File) Media() *Media {
	return &Media{Kind: f.Kind, URL: f.URL, FileName: f.OriginalName}
}
