package storage

import (
	"context"
	"fmt"
	"io"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	GetPublicURL(key string) string
}

// BracketExportKey is the object key of a tournament's exported bracket.
// Each export overwrites the previous one.
func BracketExportKey(tournamentID int) string {
	return fmt.Sprintf("brackets/tournament_%d.json", tournamentID)
}
