package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/yogansh2008/AutoAttendDevArc/attend"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Repository stores accepted meeting links.
type Repository struct {
	db *gorm.DB
}

var _ attend.MeetingRepository = (*Repository)(nil)

// NewSQLiteRepository creates a repository backed by SQLite.
func NewSQLiteRepository(dsn string, gormLogger logger.Interface) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn required")
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	if !isMemoryDSN(dsn) {
		dbDir := filepath.Dir(dsn)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := applySQLitePragmas(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&MeetingRecordModel{}); err != nil {
		return nil, fmt.Errorf("migrate meeting_records: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Repository{db: db}, nil
}

// ConfigurePool updates the database connection pool settings.
func (r *Repository) ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error {
	if r == nil || r.db == nil {
		return errors.New("repository not configured")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if maxOpen >= 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime >= 0 {
		sqlDB.SetConnMaxLifetime(maxLifetime)
	}
	return nil
}

// Save inserts record unless a record with the same platform and canonical
// URL already exists. It reports whether a row was created; in both cases
// record is filled with the stored ID and timestamps.
func (r *Repository) Save(ctx context.Context, record *attend.MeetingRecord) (bool, error) {
	if record == nil {
		return false, errors.New("record required")
	}
	if strings.TrimSpace(record.Platform) == "" || strings.TrimSpace(record.CanonicalURL) == "" {
		return false, errors.New("platform and canonical url required")
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := toModel(record)
		model.ID = 0
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "canonical_url"}},
			DoNothing: true,
		}).Create(model)
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0

		var stored MeetingRecordModel
		if err := tx.Where("platform = ? AND canonical_url = ?", record.Platform, record.CanonicalURL).First(&stored).Error; err != nil {
			return err
		}
		record.ID = stored.ID
		record.CreatedAt = stored.CreatedAt
		record.UpdatedAt = stored.UpdatedAt
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("save meeting record: %w", err)
	}
	return created, nil
}

// FindByURL returns the record stored for platform and canonicalURL, or an
// error wrapping attend.ErrNotFound.
func (r *Repository) FindByURL(ctx context.Context, platform, canonicalURL string) (*attend.MeetingRecord, error) {
	var model MeetingRecordModel
	err := r.db.WithContext(ctx).Where("platform = ? AND canonical_url = ?", platform, canonicalURL).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %s: %w", platform, canonicalURL, attend.ErrNotFound)
		}
		return nil, err
	}
	return toInternal(model), nil
}

// List returns stored records oldest first. An empty platform lists all.
func (r *Repository) List(ctx context.Context, platform string) ([]*attend.MeetingRecord, error) {
	query := r.db.WithContext(ctx).Model(&MeetingRecordModel{})
	if platform = strings.TrimSpace(platform); platform != "" {
		query = query.Where("platform = ?", platform)
	}
	var models []MeetingRecordModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]*attend.MeetingRecord, 0, len(models))
	for _, model := range models {
		records = append(records, toInternal(model))
	}
	return records, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MeetingRecordModel{}).Count(&count).Error
	return count, err
}

// CountByPlatform returns the number of stored records per platform.
func (r *Repository) CountByPlatform(ctx context.Context) (map[string]int64, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("repository not configured")
	}
	rows := make([]struct {
		Platform string
		Count    int64
	}, 0)
	err := r.db.WithContext(ctx).Model(&MeetingRecordModel{}).
		Select("platform, COUNT(*) as count").
		Group("platform").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Platform] = row.Count
	}
	return result, nil
}

// Delete removes a record permanently so the link can be saved again.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&MeetingRecordModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("id %d: %w", id, attend.ErrNotFound)
	}
	return nil
}

func applySQLitePragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA cache_size=-64000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, stmt := range pragmas {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:")
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
