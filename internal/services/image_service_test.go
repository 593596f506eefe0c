package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
)

type memoryStore struct {
	saved       map[string][]byte
	contentType string
}

func (m *memoryStore) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.saved[key] = data
	m.contentType = contentType
	return "/media/" + key, nil
}

func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() {
		form.RemoveAll()
	})
	return form.File["image"][0]
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n0000000000000000")

func TestImageService_Upload(t *testing.T) {
	store := &memoryStore{saved: map[string][]byte{}}
	images := NewImageService(store)

	url, err := images.Upload(context.Background(), "uploads/food_picture/", formFile(t, "kiwi.png", pngBytes))
	require.NoError(t, err)
	assert.Regexp(t, `^/media/uploads/food_picture/.+\.png$`, url)
	assert.Equal(t, "image/png", store.contentType)
	require.Len(t, store.saved, 1)
	for _, data := range store.saved {
		assert.Equal(t, pngBytes, data)
	}
}

func TestImageService_RejectsInvalidFiles(t *testing.T) {
	store := &memoryStore{saved: map[string][]byte{}}
	images := NewImageService(store)

	cases := map[string]*multipart.FileHeader{
		"missing": nil,
		"empty":   formFile(t, "empty.png", nil),
		"text":    formFile(t, "notes.png", []byte("just some text")),
	}
	for name, file := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := images.Upload(context.Background(), "uploads/food_picture/", file)
			verr, ok := apierrors.AsValidationError(err)
			require.True(t, ok, "got %v", err)
			assert.Contains(t, verr.Fields, "image")
		})
	}

	images.maxSize = 4
	_, err := images.Upload(context.Background(), "uploads/food_picture/", formFile(t, "kiwi.png", pngBytes))
	verr, ok := apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields["image"], "at most 4 bytes")
	assert.Empty(t, store.saved)
}
