package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded files and returns the URL they are served from.
type Store interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ObjectKey builds a unique key for an upload under prefix, keeping the
// extension of the original file name.
func ObjectKey(prefix, filename string) string {
	return prefix + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
