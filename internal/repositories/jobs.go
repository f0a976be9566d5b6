package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/entities"
	"gorm.io/gorm"
)

// Jobs is the run-history repository. The pipeline only queries known
// identities and appends; everything else here serves the jobs CLI command
// and the daily pruner.
type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// Upsert records listings into history: unseen identities are inserted with
// first_seen_at set, known ones get last_seen_at refreshed. Last-writer-wins
// on concurrent duplicate identities is fine since the key is the same.
func (r *Jobs) Upsert(ctx context.Context, listings []models.JobListing) (newCount, updatedCount int64, err error) {

	now := time.Now()

	for _, listing := range listings {
		var existing entities.JobRecord
		err = r.db.WithContext(ctx).First(&existing, "id = ?", listing.ID).Error

		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return newCount, updatedCount, err
			}
			record := recordFrom(listing)
			record.FirstSeenAt = now
			record.LastSeenAt = now
			if err = r.db.WithContext(ctx).Create(&record).Error; err != nil {
				return newCount, updatedCount, err
			}
			newCount++
			continue
		}

		err = r.db.WithContext(ctx).Model(&entities.JobRecord{}).
			Where("id = ?", listing.ID).
			Update("last_seen_at", now).Error
		if err != nil {
			return newCount, updatedCount, err
		}
		updatedCount++
	}

	return newCount, updatedCount, nil
}

// KnownIDs reports which of the given identities are already in history.
func (r *Jobs) KnownIDs(ctx context.Context, ids []string) (map[string]bool, error) {

	known := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return known, nil
	}

	var found []string
	err := r.db.WithContext(ctx).Model(&entities.JobRecord{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	for _, id := range found {
		known[id] = true
	}
	return known, nil
}

func (r *Jobs) Get(ctx context.Context, limit, offset int, company string) ([]entities.JobRecord, error) {

	query := r.db.WithContext(ctx).
		Order("posted_at DESC").
		Limit(limit).
		Offset(offset)

	if company != "" {
		query = query.Where("company LIKE ?", "%"+company+"%")
	}

	var records []entities.JobRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Jobs) Count(ctx context.Context) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.JobRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RemoveOld prunes records not seen since the expiration time.
func (r *Jobs) RemoveOld(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entities.JobRecord{}, "last_seen_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}

func recordFrom(listing models.JobListing) entities.JobRecord {
	return entities.JobRecord{
		ID:        listing.ID,
		Title:     listing.Title,
		Company:   listing.Company,
		Location:  listing.Location,
		URL:       listing.URL,
		WorkModel: string(listing.WorkModel),
		PostedRaw: listing.PostedRaw,
		PostedAt:  listing.PostedAt,
		Salary:    listing.Salary,
		JobType:   listing.JobType,
		ScrapedAt: listing.ScrapedAt,
	}
}

// ListingFrom rebuilds the domain shape from a history row, for display.
func ListingFrom(record entities.JobRecord) models.JobListing {
	return models.JobListing{
		ID:        record.ID,
		Title:     record.Title,
		Company:   record.Company,
		Location:  record.Location,
		URL:       record.URL,
		WorkModel: models.WorkModel(record.WorkModel),
		PostedRaw: record.PostedRaw,
		PostedAt:  record.PostedAt,
		Salary:    record.Salary,
		JobType:   record.JobType,
		ScrapedAt: record.ScrapedAt,
	}
}
