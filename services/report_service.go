package services

import (
	"context"
	"fmt"
	"time"

	"securecheck-api/catalog"
	"securecheck-api/gateway"
	"securecheck-api/models"
	"securecheck-api/predict"
	"securecheck-api/summary"

	"go.uber.org/zap"
)

var fetchAllStatement = fmt.Sprintf("SELECT * FROM %s ORDER BY id", gateway.Table)

// ReportService is the surface the HTTP layer talks to. Each call that needs
// history fetches a fresh snapshot, so no state is carried between requests
// apart from what the cache holds.
type ReportService struct {
	gw     gateway.Gateway
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

func NewReportService(gw gateway.Gateway, cache *CacheService, ttl time.Duration, logger *zap.Logger) *ReportService {
	if cache == nil {
		cache = DisabledCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{gw: gw, cache: cache, ttl: ttl, logger: logger.Named("report")}
}

// FetchAll returns every stop in id order.
func (s *ReportService) FetchAll(ctx context.Context) (*gateway.ResultSet, error) {
	rs, err := s.gw.Execute(ctx, fetchAllStatement)
	if err != nil {
		return rs, fmt.Errorf("fetch all stops: %w", err)
	}
	return rs, nil
}

// catalogKey names a query's cache entry by its label, which stays stable
// when the catalog constants are reordered.
func catalogKey(q catalog.Query) string {
	return "catalog:" + q.Definition().Label
}

// RunCatalogQuery runs q, serving a cached result when one is fresh. Failed
// runs are never cached.
func (s *ReportService) RunCatalogQuery(ctx context.Context, q catalog.Query) (*gateway.ResultSet, error) {
	key := catalogKey(q)

	var cached gateway.ResultSet
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	rs, err := catalog.Run(ctx, s.gw, q)
	if err != nil {
		return rs, err
	}
	s.store(key, rs)
	return rs, nil
}

// InvalidateCatalogQuery drops the cached result of q so the next run goes to
// the store.
func (s *ReportService) InvalidateCatalogQuery(ctx context.Context, q catalog.Query) error {
	if err := s.cache.Delete(ctx, catalogKey(q)); err != nil {
		return fmt.Errorf("invalidate %q: %w", q.Definition().Label, err)
	}
	return nil
}

// Summarize computes the dashboard counters over rs.
func (s *ReportService) Summarize(rs *gateway.ResultSet) summary.Metrics {
	return summary.Summarize(rs)
}

// Metrics fetches the log and summarizes it.
func (s *ReportService) Metrics(ctx context.Context) (summary.Metrics, error) {
	const key = "summary:metrics"

	var cached summary.Metrics
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rs, err := s.FetchAll(ctx)
	if err != nil {
		return summary.Metrics{}, err
	}
	m := s.Summarize(rs)
	s.store(key, m)
	return m, nil
}

// Predict fetches the current history and votes over it. A store failure is
// returned as an error rather than silently turned into the fallback pair.
func (s *ReportService) Predict(ctx context.Context, req models.PredictionRequest) (models.PredictionResult, error) {
	rs, err := s.FetchAll(ctx)
	if err != nil {
		return models.PredictionResult{}, err
	}

	result := predict.New(predict.NewSnapshot(rs)).Predict(req)
	result.Narrative = predict.Narrative(req)

	s.logger.Debug("prediction served",
		zap.Int("matched", result.MatchedCount),
		zap.Bool("fallback", result.Fallback),
		zap.String("outcome", result.PredictedOutcome),
		zap.String("violation", result.PredictedViolation),
	)
	return result, nil
}

func (s *ReportService) store(key string, value any) {
	if !s.cache.Available() {
		return
	}
	go func() {
		if err := s.cache.Set(context.Background(), key, value, s.ttl); err != nil {
			s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}()
}
