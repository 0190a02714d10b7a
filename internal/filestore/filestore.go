// Package filestore abstracts where image bytes live: local disk, an
// S3-compatible bucket or a cloud image host. Records only keep the reference
// string a store hands back from Save.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chekke24/challenger-premios-backend/internal/config"
)

// ErrNotExist is returned by Remove when the referenced file is already gone.
var ErrNotExist = errors.New("file does not exist")

// Object is a file ready to be written.
type Object struct {
	Name        string // collision-resistant name, see NewName
	Body        io.Reader
	Size        int64
	ContentType string
}

type FileStore interface {
	// Save writes obj and returns the reference to persist with the record:
	// a relative name for local disk, a public URL for remote stores.
	Save(ctx context.Context, obj Object) (string, error)
	// Remove deletes the file behind ref. Missing files yield ErrNotExist.
	Remove(ctx context.Context, ref string) error
}

// NewName builds a stored file name from a time token, a random suffix and the
// original extension.
func NewName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.FileStore) (FileStore, error) {
	switch cfg.Driver {
	case config.FileStoreLocal, "":
		return NewLocal(cfg.UploadsDir, cfg.UploadsURLPrefix)
	case config.FileStoreS3:
		return NewMinio(ctx, MinioOptions{
			Endpoint:   cfg.StorageEndpoint,
			AccessKey:  cfg.StorageAccessKey,
			SecretKey:  cfg.StorageSecretKey,
			Bucket:     cfg.StorageBucket,
			PublicBase: cfg.StoragePublicBase,
			UseSSL:     cfg.StorageUseSSL,
		})
	case config.FileStoreCloudinary:
		return NewCloudinary(CloudinaryOptions{
			URL:       cfg.CloudinaryURL,
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		})
	default:
		return nil, fmt.Errorf("unknown file store %q", cfg.Driver)
	}
}
