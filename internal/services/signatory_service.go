package services

import (
	"context"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/utils"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type SignatoryService interface {
	// ListPublic returns publicly displayed signatures, newest first.
	ListPublic(ctx context.Context, limit, offset int) ([]dtos.SignatoryPublic, error)
	// ListAll returns every row including email and token (debug only).
	ListAll(ctx context.Context) ([]dtos.SignatoryDebug, error)
	Ping(ctx context.Context) error
}

type signatoryService struct {
	repo repositories.SignatoryRepository
}

func NewSignatoryService(repo repositories.SignatoryRepository) SignatoryService {
	return &signatoryService{repo: repo}
}

func (s *signatoryService) ListPublic(ctx context.Context, limit, offset int) ([]dtos.SignatoryPublic, error) {
	limit, offset = ClampPage(limit, offset)
	rows, err := s.repo.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, utils.NewStorageError(err)
	}
	out := make([]dtos.SignatoryPublic, 0, len(rows))
	for _, r := range rows {
		out = append(out, dtos.NewSignatoryPublic(r))
	}
	return out, nil
}

func (s *signatoryService) ListAll(ctx context.Context) ([]dtos.SignatoryDebug, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, utils.NewStorageError(err)
	}
	out := make([]dtos.SignatoryDebug, 0, len(rows))
	for _, r := range rows {
		out = append(out, dtos.NewSignatoryDebug(r))
	}
	return out, nil
}

func (s *signatoryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ClampPage applies the default and maximum page size.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
