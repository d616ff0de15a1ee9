package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Nosajool/vct-manager-sub005/models"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// UploadTournamentReport выгружает полный снимок турнира (сетка, швейцарский
// этап, призовой фонд) в архивное хранилище как JSON-документ.
func UploadTournamentReport(ctx context.Context, uploader FileUploader, key string, t *models.Tournament) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament report: %w", err)
	}
	if _, err := uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
		return err
	}
	return nil
}
