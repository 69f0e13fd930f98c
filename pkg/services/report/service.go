package report

import (
	"context"
	"fmt"

	"github.com/andes-data/sales-atlas/pkg/models/domain"
	"github.com/andes-data/sales-atlas/pkg/services/catalog"
	"github.com/andes-data/sales-atlas/pkg/services/sales"
)

// Service runs the full extraction pipeline: resolve catalogs, fetch
// documents, build the report.
type Service struct {
	documents *sales.Service
	catalogs  *catalog.Resolver
}

func NewService(documents *sales.Service, catalogs *catalog.Resolver) *Service {
	return &Service{documents: documents, catalogs: catalogs}
}

func (s *Service) Generate(ctx context.Context, q sales.Query, refresh bool) (*domain.SalesReport, error) {
	cats, err := s.catalogs.All(ctx, refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalogs: %w", err)
	}

	docs, err := s.documents.FetchDocuments(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	return Build(docs, cats), nil
}
