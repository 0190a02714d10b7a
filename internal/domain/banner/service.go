package banner

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Chekke24/challenger-premios-backend/internal/domain/media"
	"github.com/Chekke24/challenger-premios-backend/internal/filestore"
	"github.com/Chekke24/challenger-premios-backend/internal/pkg/apperror"
	"github.com/Chekke24/challenger-premios-backend/internal/pkg/validator"
)

const table = "banners"

type Service struct {
	repo  Repository
	files filestore.FileStore
}

func NewService(repo Repository, files filestore.FileStore) *Service {
	return &Service{repo: repo, files: files}
}

func (s *Service) List(ctx context.Context) ([]Banner, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Banner, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, apperror.Validation(msgRequired, errs)
	}

	ref, err := media.Store(ctx, s.files, req.Image)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	b := &Banner{Image: ref}
	if err := s.repo.Create(ctx, b); err != nil {
		outcome := media.Discard(ctx, s.files, ref, table, 0)
		log.Error().Err(err).Str("imagen", ref).Stringer("cleanup", outcome).Msg("insert banner failed")
		return nil, apperror.Storage(err)
	}

	return b, nil
}

// Delete removes the banner row and, best effort, its image.
func (s *Service) Delete(ctx context.Context, id int64) (media.RemoveOutcome, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, classify(err)
	}

	outcome := media.Discard(ctx, s.files, b.Image, table, id)

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
