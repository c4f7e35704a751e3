package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://choir.s3.eu-west-1.amazonaws.com",
		publicBaseURL(S3Config{Bucket: "choir", Region: "eu-west-1"}))
	assert.Equal(t, "http://localhost:9000/choir",
		publicBaseURL(S3Config{Bucket: "choir", Endpoint: "http://localhost:9000/"}))
}

func TestRef(t *testing.T) {
	ref := Ref("media/audios/hymn.mp3")
	assert.Equal(t, "storage://media/audios/hymn.mp3", ref)

	path, ok := PathOf(ref)
	assert.True(t, ok)
	assert.Equal(t, "media/audios/hymn.mp3", path)

	_, ok = PathOf("data:audio/mpeg;base64,AAAA")
	assert.False(t, ok)
	_, ok = PathOf("https://example.com/hymn.mp3")
	assert.False(t, ok)
	_, ok = PathOf(Ref(""))
	assert.False(t, ok)
}
