package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/linkedscout/linkedscout/internal/clients/linkedin"
	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/logger"
	"github.com/linkedscout/linkedscout/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type pageFetcher interface {
	FetchPage(ctx context.Context, page linkedin.PageRequest) ([]byte, error)
}

type pageParser interface {
	Parse(markup []byte) (models.PageResult, error)
}

type knownIDsRepository interface {
	KnownIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// SearchPipeline drives one search run: translate criteria, fetch and parse
// pages in order, deduplicate by listing identity, rank by recency. Pages
// are fetched sequentially; the shared rate limiter inside the fetcher is
// what bounds the request rate, so parallel fetch would defeat it.
type SearchPipeline struct {
	fetcher pageFetcher
	parser  pageParser
	history knownIDsRepository
}

func NewSearchPipeline(fetcher pageFetcher, parser pageParser, history knownIDsRepository) *SearchPipeline {
	return &SearchPipeline{fetcher: fetcher, parser: parser, history: history}
}

type RunOptions struct {
	// OnlyNew additionally discards listings whose identity is already in
	// run history.
	OnlyNew bool
}

// Run executes the pipeline. An error return means the criteria were
// invalid and nothing was fetched. Any failure after that point comes back
// inside the result: Status is RunFailed, Err carries the cause, and Jobs
// holds everything accumulated before the failure.
func (p *SearchPipeline) Run(ctx context.Context, criteria models.SearchCriteria, opts RunOptions) (models.RunResult, error) {

	plan, err := linkedin.NewQueryPlan(criteria)
	if err != nil {
		return models.RunResult{}, err
	}

	result := models.RunResult{
		ID:        uuid.NewString(),
		Criteria:  criteria,
		Status:    models.RunOK,
		StartedAt: time.Now(),
	}

	seen := make(map[string]struct{})

	for page := 0; ; page++ {

		// Cancellation is honored between pages, never mid-fetch.
		if ctx.Err() != nil {
			result.Status = models.RunFailed
			result.Err = ctx.Err()
			break
		}

		pageReq, err := plan.PageRequest(page)
		if err != nil {
			// Offset ceiling: done, with a truncated notice.
			if errors.Is(err, linkedin.ErrTooDeepPagination) {
				log.Warnf("hit pagination ceiling after %d pages", page)
				result.Status = models.RunTruncated
			} else {
				result.Status = models.RunFailed
				result.Err = err
			}
			break
		}

		markup, err := p.fetcher.FetchPage(ctx, pageReq)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeFetch).
				Errorf("fetch failed at offset %d: %v", pageReq.Start, err)
			result.Status = models.RunFailed
			result.Err = err
			break
		}

		pageResult, err := p.parser.Parse(markup)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeParse).
				Errorf("parse failed at offset %d: %v", pageReq.Start, err)
			result.Status = models.RunFailed
			result.Err = err
			break
		}

		result.PagesFetched++
		result.ParseAnomalies += pageResult.Anomalies

		if page == 0 && len(pageResult.Listings) == 0 {
			log.Warn("first page yielded no valid listings; source markup may have changed")
		}

		kept, err := p.dedup(ctx, pageResult.Listings, seen, opts)
		if err != nil {
			result.Status = models.RunFailed
			result.Err = err
			break
		}

		for i := range kept {
			applyRequestedWorkModel(&kept[i], criteria)
		}
		result.Jobs = append(result.Jobs, kept...)

		// Terminal conditions, in priority order: caller's cap, then the
		// page's own last-page signal.
		if len(result.Jobs) >= criteria.MaxResults {
			result.Jobs = result.Jobs[:criteria.MaxResults]
			break
		}
		if pageResult.LastPage {
			break
		}
	}

	result.Jobs = RankByRecency(result.Jobs)
	result.FinishedAt = time.Now()

	metrics.JobsScraped.Add(float64(len(result.Jobs)))
	metrics.RunDuration.Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())

	return result, nil
}

// dedup drops listings already seen in this run and, when requested,
// identities already present in run history. First occurrence wins: pages
// arrive in the source's own relevance order, so the first copy is the
// preferred one.
func (p *SearchPipeline) dedup(ctx context.Context, listings []models.JobListing,
	seen map[string]struct{}, opts RunOptions) ([]models.JobListing, error) {

	var known map[string]bool
	if opts.OnlyNew && p.history != nil && len(listings) > 0 {
		ids := lo.Map(listings, func(l models.JobListing, _ int) string { return l.ID })
		var err error
		known, err = p.history.KnownIDs(ctx, ids)
		if err != nil {
			return nil, errors.Wrap(err, "failed to query run history")
		}
	}

	kept := make([]models.JobListing, 0, len(listings))
	for _, listing := range listings {
		if _, dup := seen[listing.ID]; dup {
			continue
		}
		seen[listing.ID] = struct{}{}
		if known[listing.ID] {
			continue
		}
		kept = append(kept, listing)
	}
	return kept, nil
}

// applyRequestedWorkModel trusts the source-side filter when the criteria
// asked for exactly one work model and the parser could not classify.
func applyRequestedWorkModel(listing *models.JobListing, criteria models.SearchCriteria) {
	if listing.WorkModel == "" && len(criteria.WorkModels) == 1 {
		listing.WorkModel = criteria.WorkModels[0]
	}
}
