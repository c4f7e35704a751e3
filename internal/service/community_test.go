package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuca/portal/internal/model"
	"github.com/zuca/portal/internal/repository"
	"github.com/zuca/portal/internal/storage"
	"github.com/zuca/portal/internal/store"
)

func TestPetitionService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)
	bob := e.register(t, "Bob", model.RoleGuest)

	_, err := e.petitions.Submit(ctx, alice, "  ")
	assert.ErrorIs(t, err, ErrEmptyPetition)

	p, err := e.petitions.Submit(ctx, alice, "For my grandmother's health")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.UserName)
	assert.Zero(t, p.Likes)

	for range 3 {
		_, err = e.petitions.Amen(ctx, bob.Actor(), p.ID)
		require.NoError(t, err)
	}
	likes, err := e.petitions.Amen(ctx, alice.Actor(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, likes)

	assert.ErrorIs(t, e.petitions.Edit(ctx, alice.Actor(), p.ID, ""), ErrEmptyPetition)
	assert.ErrorIs(t, e.petitions.Edit(ctx, bob.Actor(), p.ID, "changed"), repository.ErrForbidden)
	require.NoError(t, e.petitions.Edit(ctx, alice.Actor(), p.ID, "For my grandmother"))

	petitions, err := e.petitions.Petitions(ctx)
	require.NoError(t, err)
	require.Len(t, petitions, 1)
	assert.Equal(t, "For my grandmother", petitions[0].Content)
	assert.Equal(t, 4, petitions[0].Likes)

	require.NoError(t, e.petitions.Delete(ctx, alice.Actor(), p.ID))
}

func TestChoirService_Share(t *testing.T) {
	objects := newMemoryStorage()
	e := newEnvWith(t, nil, objects)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)

	hymn, err := e.choir.Share(ctx, alice, ChoirInput{
		Title: "Ave Maria",
		Kind:  model.MediaAudio,
		File:  &Upload{FileName: "ave-maria.mp3", Data: mp3Header},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaAudio, hymn.Kind)
	assert.Equal(t, "ave-maria.mp3", hymn.FileName)
	assert.Equal(t, "Alice", hymn.UploaderName)
	assert.True(t, strings.HasPrefix(hymn.URL, "storage://media/audios/"))
	assert.Contains(t, hymn.Link, "https://media.example.org/media/audios/")

	score, err := e.choir.Share(ctx, alice, ChoirInput{
		File: &Upload{FileName: "score.pdf", Data: pdfHeader},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaDocument, score.Kind)
	assert.Equal(t, "score.pdf", score.Title)

	all, err := e.choir.Materials(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, score.ID, all[0].ID)

	audio, err := e.choir.Materials(ctx, model.MediaAudio)
	require.NoError(t, err)
	require.Len(t, audio, 1)
	assert.Equal(t, hymn.ID, audio[0].ID)
}

func TestChoirService_Rejects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)

	_, err := e.choir.Share(ctx, alice, ChoirInput{Title: "Nothing"})
	assert.ErrorIs(t, err, ErrPayloadRequired)

	_, err = e.choir.Share(ctx, alice, ChoirInput{File: &Upload{FileName: "photo.png", Data: pngHeader}})
	assert.ErrorIs(t, err, ErrInvalidMedia)

	_, err = e.choir.Share(ctx, alice, ChoirInput{Kind: model.MediaImage, File: &Upload{FileName: "score.pdf", Data: pdfHeader}})
	assert.ErrorIs(t, err, ErrInvalidMedia)

	_, err = e.choir.Share(ctx, alice, ChoirInput{Kind: model.MediaVideo, File: &Upload{FileName: "score.pdf", Data: pdfHeader}})
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestMediaService_StorageFailure(t *testing.T) {
	objects := newMemoryStorage()
	objects.failing = true
	e := newEnvWith(t, nil, objects)
	alice := e.register(t, "Alice", model.RoleStudent)

	_, _, err := e.chat.Post(context.Background(), alice, "", &Upload{FileName: "me.png", Data: pngHeader})
	assert.ErrorContains(t, err, "failed to save media")

	msgs, err := e.chat.Messages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestChoirService_StoresStableReference(t *testing.T) {
	objects := newMemoryStorage()
	e := newEnvWith(t, nil, objects)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)

	hymn, err := e.choir.Share(ctx, alice, ChoirInput{
		Title: "Ave Maria",
		File:  &Upload{FileName: "ave-maria.mp3", Data: mp3Header},
	})
	require.NoError(t, err)
	path, ok := storage.PathOf(hymn.URL)
	require.True(t, ok)

	stored, err := store.Read(ctx, e.store, store.KeyChoir, []model.ChoirMaterial{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, storage.Ref(path), stored[0].URL, "records keep the reference, never a signed link")
	assert.Empty(t, stored[0].Link)

	first, err := e.choir.Materials(ctx, "")
	require.NoError(t, err)
	second, err := e.choir.Materials(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, first[0].Link, path)
	assert.Contains(t, second[0].Link, path)
	assert.NotEqual(t, first[0].Link, second[0].Link, "links are built on every read")
}

func TestChoirService_DeleteRemovesPayload(t *testing.T) {
	objects := newMemoryStorage()
	e := newEnvWith(t, nil, objects)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)
	bob := e.register(t, "Bob", model.RoleGuest)

	hymn, err := e.choir.Share(ctx, alice, ChoirInput{File: &Upload{FileName: "hymn.mp3", Data: mp3Header}})
	require.NoError(t, err)
	path, _ := storage.PathOf(hymn.URL)
	require.True(t, objects.has(path))

	assert.ErrorIs(t, e.choir.Delete(ctx, bob.Actor(), hymn.ID), repository.ErrForbidden)
	assert.True(t, objects.has(path))

	require.NoError(t, e.choir.Delete(ctx, alice.Actor(), hymn.ID))
	assert.False(t, objects.has(path))
	assert.ErrorIs(t, e.choir.Delete(ctx, alice.Actor(), hymn.ID), repository.ErrMaterialNotFound)
}

func TestChatService_DeleteRemovesAttachment(t *testing.T) {
	objects := newMemoryStorage()
	e := newEnvWith(t, nil, objects)
	ctx := context.Background()
	alice := e.register(t, "Alice", model.RoleStudent)

	msg, _, err := e.chat.Post(ctx, alice, "Sunday hymn", &Upload{FileName: "hymn.mp3", Data: mp3Header})
	require.NoError(t, err)
	path, ok := storage.PathOf(msg.Media.URL)
	require.True(t, ok)
	assert.Contains(t, msg.Media.Link, path)

	msgs, err := e.chat.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Media.Link, path)

	require.NoError(t, e.chat.Delete(ctx, alice.Actor(), msg.ID))
	assert.False(t, objects.has(path))
}
