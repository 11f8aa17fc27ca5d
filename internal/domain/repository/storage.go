package repository

import (
	"context"
	"io"
)

// LogoStorage stores uploaded branding assets and returns a public URL
// that can be written into the settings record.
type LogoStorage interface {
	// UploadLogo stores the object under the given name and returns the
	// URL it will be served from.
	UploadLogo(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
}
