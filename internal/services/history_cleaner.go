package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type historyPruneRepository interface {
	RemoveOld(ctx context.Context, expirationTime time.Time) (int64, error)
}

// HistoryCleaner prunes history records whose identity has not been seen
// for the configured number of days. Runs daily at midnight.
type HistoryCleaner struct {
	history          historyPruneRepository
	cron             *cron.Cron
	expirationInDays int
}

func NewHistoryCleaner(history historyPruneRepository, expirationInDays int) (*HistoryCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	cleaner := &HistoryCleaner{
		history:          history,
		cron:             cron.New(),
		expirationInDays: expirationInDays,
	}

	_, err := cleaner.cron.AddFunc("0 0 * * *", cleaner.pruneOldRecords)
	if err != nil {
		return nil, err
	}

	cleaner.cron.Start()
	log.Infof("history cleaner started, expiration in days: %d", cleaner.expirationInDays)
	return cleaner, nil
}

func (c *HistoryCleaner) Stop() {
	c.cron.Stop()
}

func (c *HistoryCleaner) pruneOldRecords() {
	expirationTime := time.Now().AddDate(0, 0, -c.expirationInDays)
	rowsAffected, err := c.history.RemoveOld(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("failed to prune old history records: %v", err)
	} else {
		log.Infof("history pruned, affected rows: %v", rowsAffected)
	}
}
