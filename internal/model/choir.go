package model

import "time"

type ChoirMaterial struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Kind         MediaKind `json:"type"`
	URL          string    `json:"url"`
	FileName     string    `json:"fileName,omitempty"`
	UploadedBy   string    `json:"uploadedBy"`
	UploaderName string    `json:"uploaderName"`
	Timestamp    time.Time `json:"timestamp"`

	// Computed fields (not persisted)
	Link string `json:"-"`
}

// ChoirKind reports whether kind can be shared as choir material.
// Images belong to chat and updates only.
func ChoirKind(kind MediaKind) bool {
	return kind == MediaAudio || kind == MediaVideo || kind == MediaDocument
}
