// internal/apptypes/storage_service_iface.go
package apptypes

import (
	"context"
	"io"
)

// StorageService stores uploaded profile pictures.
// It lives here rather than in storage so services can depend on it without a cycle.
type StorageService interface {
	// UploadFile stores the content of reader and returns where it can be fetched.
	// fileName is the client-supplied name; only its extension is kept.
	UploadFile(ctx context.Context, reader io.Reader, fileSize int64, fileName string, mimeType string) (*FileInfo, error)
}
