package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/linkedscout/linkedscout/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(dbPath string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {

	if err := c.DB.AutoMigrate(entities.JobRecord{}); err != nil {
		return fmt.Errorf("failed to migrate JobRecord entity: %w", err)
	}

	if err := c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_job_records_company ON job_records (company);").
		Error; err != nil {
		return fmt.Errorf("failed to create company index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
