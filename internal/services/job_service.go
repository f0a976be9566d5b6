package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type historyWriter interface {
	Upsert(ctx context.Context, listings []models.JobListing) (int64, int64, error)
}

// JobService ties the pipeline to persistence: it runs searches, records
// results into run history, and caches results so identical criteria issued
// again within the TTL reuse the previous run instead of re-scraping.
type JobService struct {
	pipeline *SearchPipeline
	history  historyWriter
	cache    *gocache.Cache
}

func NewJobService(pipeline *SearchPipeline, history historyWriter) *JobService {
	return &JobService{
		pipeline: pipeline,
		history:  history,
		cache:    gocache.New(10*time.Minute, 20*time.Minute),
	}
}

type SearchOptions struct {
	OnlyNew  bool
	SaveToDb bool
}

func (s *JobService) Search(ctx context.Context, criteria models.SearchCriteria, opts SearchOptions) (models.RunResult, error) {

	cacheKey := criteriaCacheKey(criteria, opts.OnlyNew)
	if cached, found := s.cache.Get(cacheKey); found {
		log.Debug("reusing cached run result")
		return cached.(models.RunResult), nil
	}

	result, err := s.pipeline.Run(ctx, criteria, RunOptions{OnlyNew: opts.OnlyNew})
	if err != nil {
		return models.RunResult{}, err
	}

	if opts.SaveToDb && len(result.Jobs) > 0 && s.history != nil {
		newCount, updatedCount, err := s.history.Upsert(ctx, result.Jobs)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to record run history: %v", err)
		} else {
			log.Infof("recorded run history: %d new, %d already known", newCount, updatedCount)
		}
	}

	// Only clean completed runs are worth reusing.
	if result.Status == models.RunOK {
		s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	}

	return result, nil
}

// RunAlert executes one saved alert. Disabled alerts yield an empty result.
func (s *JobService) RunAlert(ctx context.Context, alert models.SavedAlert, opts SearchOptions) (models.RunResult, error) {

	if !alert.Enabled {
		return models.RunResult{Criteria: alert.Criteria, Status: models.RunOK}, nil
	}

	return s.Search(ctx, alert.Criteria, opts)
}

func criteriaCacheKey(criteria models.SearchCriteria, onlyNew bool) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v|%v", criteria, onlyNew)))
	return hex.EncodeToString(sum[:])
}
