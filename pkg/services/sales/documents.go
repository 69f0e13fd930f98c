package sales

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andes-data/sales-atlas/pkg/models/store"
	"github.com/andes-data/sales-atlas/pkg/store/bsale"
)

const documentFields = "[id,number,emissionDate,documentTypeId,trackingNumber,token," +
	"netAmount,taxAmount,totalAmount,totalDiscount," +
	"client,office,user,coin,priceList,details]"

var expandRelations = []string{"details", "client", "office", "user", "coin", "priceList"}

// Query bounds one document extraction. Zero-value dates disable the
// emission date filter; a single bound reuses itself for the other end.
type Query struct {
	Since time.Time
	Until time.Time
	Limit int
}

// Service fetches sales documents with their expanded relations.
type Service struct {
	fetcher bsale.Fetcher
}

func NewService(fetcher bsale.Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// FetchDocuments retrieves every document matching the query. Accounts that
// reject expand=document_type get a single retry without that relation; the
// reconciler falls back to the catalog map for the type name.
func (s *Service) FetchDocuments(ctx context.Context, q Query) ([]store.Record, error) {
	logger := zerolog.Ctx(ctx)

	docs, err := s.fetcher.FetchAll(ctx, "documents", BuildParams(q, true))
	if err == nil {
		return docs, nil
	}

	var apiErr *bsale.APIError
	if errors.As(err, &apiErr) && isDocumentTypeExpandError(apiErr) {
		logger.Warn().Msg("expand=document_type not supported, retrying without it")
		return s.fetcher.FetchAll(ctx, "documents", BuildParams(q, false))
	}
	return nil, err
}

// BuildParams assembles the documents query: expanded relations, the field
// projection and, when bounded, the emission date range filter.
func BuildParams(q Query, includeDocumentType bool) url.Values {
	expand := append([]string(nil), expandRelations...)
	if includeDocumentType {
		expand = append(expand, "document_type")
	}

	params := url.Values{}
	params.Set("expand", strings.Join(expand, ","))
	params.Set("fields", documentFields)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	if start, end, ok := dayBounds(q.Since, q.Until); ok {
		params.Set("emissiondaterange", fmt.Sprintf("[%d,%d]", start, end))
	}
	return params
}

// dayBounds widens the range to full days: 00:00:00 on the start date
// through 23:59:59 on the end date, in local time.
func dayBounds(since, until time.Time) (int64, int64, bool) {
	if since.IsZero() && until.IsZero() {
		return 0, 0, false
	}
	if since.IsZero() {
		since = until
	}
	if until.IsZero() {
		until = since
	}

	start := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())
	end := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, until.Location())
	return start.Unix(), end.Unix(), true
}

func isDocumentTypeExpandError(err *bsale.APIError) bool {
	msg := err.Error()
	return strings.Contains(msg, "document_type") && strings.Contains(msg, "expand")
}
