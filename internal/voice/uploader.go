// Package voice archives raw voice recordings to Cloud Storage so failed
// transcriptions can be replayed later.
package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// uploadTimeout bounds a single object write.
const uploadTimeout = 2 * time.Minute

// Uploader writes recordings to a GCS bucket.
// It assumes Application Default Credentials are configured (gcloud auth application-default login).
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader creates a storage client for the given bucket.
func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("voice: bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("voice: create storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Save uploads one recording under users/{userID}/voice/ and returns its
// gs:// URI.
func (u *Uploader) Save(ctx context.Context, userID string, audio []byte, mimeType string) (string, error) {
	objectName := fmt.Sprintf("users/%s/voice/%s%s", userID, uuid.New().String(), extensionFor(mimeType))

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = mimeType

	if _, err := io.Copy(w, bytes.NewReader(audio)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("voice: copy recording to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("voice: finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", u.bucket, objectName), nil
}

// Close releases the underlying client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	default:
		return ".bin"
	}
}
