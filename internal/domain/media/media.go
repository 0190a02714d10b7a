// Package media holds the image handling shared by publicaciones and banners:
// writing an uploaded file to the file store and removing it again.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/Chekke24/challenger-premios-backend/internal/filestore"
)

// RemoveOutcome is what happened to a record's image on delete.
type RemoveOutcome int

const (
	Removed RemoveOutcome = iota
	// AlreadyGone means the file did not exist. Tolerated, never surfaced.
	AlreadyGone
	// RemoveFailed is logged but does not block deleting the record.
	RemoveFailed
)

func (o RemoveOutcome) String() string {
	switch o {
	case Removed:
		return "removed"
	case AlreadyGone:
		return "already_gone"
	case RemoveFailed:
		return "failed"
	default:
		return fmt.Sprintf("RemoveOutcome(%d)", int(o))
	}
}

// Store writes the uploaded file under a fresh name and returns its reference.
func Store(ctx context.Context, files filestore.FileStore, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ref, err := files.Save(ctx, filestore.Object{
		Name:        filestore.NewName(fh.Filename),
		Body:        f,
		Size:        fh.Size,
		ContentType: mtype.String(),
	})
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return ref, nil
}

// Discard removes the file behind ref. It never fails: a missing file is
// AlreadyGone, anything else is logged and reported as RemoveFailed.
func Discard(ctx context.Context, files filestore.FileStore, ref, table string, id int64) RemoveOutcome {
	err := files.Remove(ctx, ref)
	switch {
	case err == nil:
		return Removed
	case errors.Is(err, filestore.ErrNotExist):
		log.Debug().Str("table", table).Int64("id", id).Str("imagen", ref).Msg("image already gone")
		return AlreadyGone
	default:
		log.Warn().Err(err).Str("table", table).Int64("id", id).Str("imagen", ref).Msg("failed to remove image")
		return RemoveFailed
	}
}
