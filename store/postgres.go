package store

import (
	"context"
	"fmt"

	"securecheck-api/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultBatchSize = 500

type Postgres struct {
	db     *gorm.DB
	logger *zap.Logger
}

func OpenPostgres(ctx context.Context, dsn string, log *zap.Logger) (*Postgres, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{db: db, logger: log.Named("store.postgres")}, nil
}

// Load migrates police_log to the StopRecord schema and inserts in batches.
func (p *Postgres) Load(ctx context.Context, records []models.StopRecord) (int, error) {
	db := p.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.StopRecord{}); err != nil {
		return 0, fmt.Errorf("migrate police_log: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	res := db.CreateInBatches(records, defaultBatchSize)
	if res.Error != nil {
		return int(res.RowsAffected), fmt.Errorf("insert records: %w", res.Error)
	}
	p.logger.Info("records loaded", zap.Int64("rows", res.RowsAffected))
	return int(res.RowsAffected), nil
}

func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
