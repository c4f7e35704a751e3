package validation

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zuca/portal/internal/model"
)

var ErrEmptyPayload = errors.New("media payload is empty")

// MediaConstraints defines which payloads are accepted as one media kind
type MediaConstraints struct {
	Kind              model.MediaKind
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
}

var (
	ImageConstraints = MediaConstraints{
		Kind: model.MediaImage,
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/gif":  true,
			"image/webp": true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".webp": true,
		},
	}

	AudioConstraints = MediaConstraints{
		Kind: model.MediaAudio,
		AllowedMimeTypes: map[string]bool{
			"audio/mpeg":      true,
			"audio/wave":      true,
			"audio/aiff":      true,
			"audio/midi":      true,
			"application/ogg": true,
			"video/mp4":       true, // m4a shares the mp4 container
		},
		AllowedExtensions: map[string]bool{
			".mp3":  true,
			".wav":  true,
			".aiff": true,
			".mid":  true,
			".ogg":  true,
			".m4a":  true,
		},
	}

	VideoConstraints = MediaConstraints{
		Kind: model.MediaVideo,
		AllowedMimeTypes: map[string]bool{
			"video/mp4":  true,
			"video/webm": true,
			"video/avi":  true,
		},
		AllowedExtensions: map[string]bool{
			".mp4":  true,
			".webm": true,
			".avi":  true,
		},
	}

	// Scores and lyrics sheets
	DocumentConstraints = MediaConstraints{
		Kind: model.MediaDocument,
		AllowedMimeTypes: map[string]bool{
			"application/pdf": true,
			"application/zip": true, // docx
			"text/plain":      true,
		},
		AllowedExtensions: map[string]bool{
			".pdf":  true,
			".docx": true,
			".txt":  true,
		},
	}

	AllMedia   = []MediaConstraints{ImageConstraints, AudioConstraints, VideoConstraints, DocumentConstraints}
	ChoirMedia = []MediaConstraints{AudioConstraints, VideoConstraints, DocumentConstraints}
)

// DetectMedia classifies a payload by its content (magic numbers) and file
// extension. The payload must match at least one of the constraint sets;
// the first match decides the kind. Returns the kind and detected MIME type.
func DetectMedia(fileName string, data []byte, maxSize int64, constraints ...MediaConstraints) (model.MediaKind, string, error) {
	if len(constraints) == 0 {
		return "", "", fmt.Errorf("no media constraints provided")
	}
	if len(data) == 0 {
		return "", "", ErrEmptyPayload
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", "", fmt.Errorf("file too large: maximum size is %d MB", maxSize/(1<<20))
	}

	// http.DetectContentType reads at most 512 bytes
	detected, _, _ := strings.Cut(http.DetectContentType(data), ";")
	ext := strings.ToLower(filepath.Ext(fileName))

	var lastErr error
	for _, c := range constraints {
		if !c.AllowedMimeTypes[detected] {
			lastErr = fmt.Errorf("invalid file type (detected: %s)", detected)
			continue
		}
		if !c.AllowedExtensions[ext] {
			lastErr = fmt.Errorf("invalid file extension: %s", ext)
			continue
		}
		return c.Kind, detected, nil
	}

	return "", "", lastErr
}
