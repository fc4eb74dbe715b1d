package airports

import (
	"context"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/Domenick1991/flightbooking/pkg/metrics"
)

type AirportUseCase interface {
	Suggest(ctx context.Context, query string) ([]domain.Suggestion, error)
}

type SuggestionCache interface {
	GetSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
	SetSuggestions(ctx context.Context, query string, suggestions []domain.Suggestion) error
}

type Enricher interface {
	SuggestAirports(ctx context.Context, query string) ([]domain.Suggestion, error)
}

type AirportService struct {
	repo     repository.AirportRepository
	cache    SuggestionCache
	enricher Enricher
	limit    int
	log      logger.Logger
	metrics  *metrics.Metrics
}

// NewAirportService wires the directory. cache and enricher may be nil.
func NewAirportService(repo repository.AirportRepository, cache SuggestionCache, enricher Enricher, limit int, log logger.Logger, m *metrics.Metrics) *AirportService {
	return &AirportService{repo: repo, cache: cache, enricher: enricher, limit: limit, log: log, metrics: m}
}

// Suggest returns airports whose city, code or name contains query. Local
// matches come first, enrichment results follow, duplicates are dropped.
func (s *AirportService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.InvalidRequest("Query is required")
	}

	if s.cache != nil {
		cached, err := s.cache.GetSuggestions(ctx, query)
		if err != nil {
			s.log.Warn("suggestion cache read failed", "query", query, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	found, err := s.repo.Search(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, 0, len(found))
	for _, a := range found {
		suggestions = append(suggestions, a.Suggestion())
	}

	complete := true
	if s.enricher != nil {
		extra, err := s.enricher.SuggestAirports(ctx, query)
		if err != nil {
			s.metrics.EnrichmentFailures.WithLabelValues("suggest").Inc()
			s.log.Warn("enrichment suggest failed", "query", query, "error", err)
			complete = false
		} else {
			suggestions = append(suggestions, extra...)
		}
	}

	suggestions = dedupe(suggestions, 2*s.limit)

	// a partial list is served but not cached
	if s.cache != nil && complete {
		if err := s.cache.SetSuggestions(ctx, query, suggestions); err != nil {
			s.log.Warn("suggestion cache write failed", "query", query, "error", err)
		}
	}
	return suggestions, nil
}

func dedupe(in []domain.Suggestion, limit int) []domain.Suggestion {
	seen := make(map[domain.Suggestion]struct{}, len(in))
	out := make([]domain.Suggestion, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var _ AirportUseCase = (*AirportService)(nil)
