package publication

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Chekke24/challenger-premios-backend/internal/domain/media"
	"github.com/Chekke24/challenger-premios-backend/internal/filestore"
	"github.com/Chekke24/challenger-premios-backend/internal/pkg/apperror"
	"github.com/Chekke24/challenger-premios-backend/internal/pkg/validator"
)

const table = "publicaciones"

// Service stores publication rows and their images.
type Service struct {
	repo  Repository
	files filestore.FileStore
}

func NewService(repo Repository, files filestore.FileStore) *Service {
	return &Service{repo: repo, files: files}
}

// List returns every publication.
func (s *Service) List(ctx context.Context) ([]Publication, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return items, nil
}

// Create validates req, writes the image and inserts the row. Nothing is
// written when validation fails. If the insert fails the image is removed
// again on a best-effort basis.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Publication, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, apperror.Validation(msgRequired, errs)
	}

	ref, err := media.Store(ctx, s.files, req.Image)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	p := &Publication{
		Title:       req.Title,
		Description: req.Description,
		Image:       ref,
		Category:    req.Category,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		outcome := media.Discard(ctx, s.files, ref, table, 0)
		log.Error().Err(err).Str("imagen", ref).Stringer("cleanup", outcome).Msg("insert publication failed")
		return nil, apperror.Storage(err)
	}

	return p, nil
}

// Delete removes the publication and its image. The image outcome is
// informational: only a missing row or a database failure is an error.
func (s *Service) Delete(ctx context.Context, id int64) (media.RemoveOutcome, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, classify(err)
	}

	outcome := media.Discard(ctx, s.files, p.Image, table, id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return outcome, classify(err)
	}
	return outcome, nil
}

func classify(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	return apperror.Storage(err)
}
