package model

type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaAudio    MediaKind = "audio"
	MediaDocument MediaKind = "document"
)

func (k MediaKind) Valid() bool {
	switch k {
	case MediaImage, MediaVideo, MediaAudio, MediaDocument:
		return true
	}
	return false
}

// Media is a single attachment. URL is the stored payload reference: an
// object storage reference or an inline data URL. Link is the fetchable
// address built when the record is read.
type Media struct {
	Kind     MediaKind `json:"type"`
	URL      string    `json:"url"`
	FileName string    `json:"fileName,omitempty"`

	Link string `json:"-"`
}
