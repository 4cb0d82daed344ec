package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/infrastructure/search"
	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

type ListingSearcher interface {
	Search(ctx context.Context, q, kind string, from, size int) ([]search.ListingDoc, int64, error)
}

// CatalogService serves the public, customer-facing catalog. Only
// published listings are ever indexed, so the index itself is the
// visibility filter.
type CatalogService struct {
	index ListingSearcher
	log   *logrus.Logger
}

func NewCatalogService(index ListingSearcher, log *logrus.Logger) *CatalogService {
	return &CatalogService{index: index, log: log}
}

func (s *CatalogService) Search(ctx context.Context, q, kind string, page helpers.PageRequest) ([]search.ListingDoc, int64, error) {
	if kind != "" && kind != search.KindService && kind != search.KindVenue {
		return nil, 0, apperr.BadRequest("Unknown listing kind")
	}
	docs, total, err := s.index.Search(ctx, q, kind, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return docs, total, nil
}
