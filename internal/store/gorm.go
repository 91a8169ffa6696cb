package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
)

// ratesSingletonID pins the exchange rate record to a single row.
const ratesSingletonID = 1

// Gorm is the postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// OpenPostgres connects to postgres and returns a Gorm store.
func OpenPostgres(dsn string, debug bool) (*Gorm, error) {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &Gorm{db: db}, nil
}

// NewGorm wraps an existing gorm handle (used in tests).
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates or updates the schema for all domain tables.
func (s *Gorm) Migrate() error {
	return s.db.Migrator().AutoMigrate(domain.Tables...)
}

func (s *Gorm) FindMany(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{})
	if filter.Model != "" {
		db = db.Where("model = ?", filter.Model)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Condition != "" {
		db = db.Where("condition = ?", filter.Condition)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Available != nil {
		db = db.Where("available = ?", *filter.Available)
	}
	if filter.MinBattery != nil {
		db = db.Where("battery_health >= ?", *filter.MinBattery)
	}
	if filter.MaxPriceARS != nil {
		db = db.Where("price_ars <= ?", *filter.MaxPriceARS)
	}
	if filter.MaxPriceUSD != nil {
		db = db.Where("price_usd <= ?", *filter.MaxPriceUSD)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where(
			"LOWER(name) LIKE ? OR LOWER(color) LIKE ? OR LOWER(chip) LIKE ? OR LOWER(description) LIKE ? OR LOWER(features) LIKE ?",
			term, term, term, term, term)
	}

	var rows []domain.Product
	if err := db.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return rows, nil
}

func (s *Gorm) FindOne(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product %s: %w", id, err)
	}
	return &p, nil
}

func (s *Gorm) Insert(ctx context.Context, p *domain.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateFields(ctx context.Context, id string, patch domain.ProductPatch, updatedAt time.Time) (int64, error) {
	updates, err := patchColumns(patch)
	if err != nil {
		return 0, err
	}
	updates["updated_at"] = updatedAt

	res := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("update product %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Gorm) DeleteOne(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete product %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Gorm) UpsertRates(ctx context.Context, rates *domain.ExchangeRates) error {
	row := *rates
	row.ID = ratesSingletonID
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert exchange rates: %w", err)
	}
	return nil
}

func (s *Gorm) GetRates(ctx context.Context) (*domain.ExchangeRates, error) {
	var rates domain.ExchangeRates
	err := s.db.WithContext(ctx).Where("id = ?", ratesSingletonID).First(&rates).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query exchange rates: %w", err)
	}
	return &rates, nil
}

func (s *Gorm) InsertStatusCheck(ctx context.Context, sc *domain.StatusCheck) error {
	if err := s.db.WithContext(ctx).Create(sc).Error; err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

func (s *Gorm) ListStatusChecks(ctx context.Context, limit int) ([]domain.StatusCheck, error) {
	db := s.db.WithContext(ctx).Order("timestamp ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var rows []domain.StatusCheck
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query status checks: %w", err)
	}
	return rows, nil
}

func (s *Gorm) PurgeStatusChecks(ctx context.Context, olderThan time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("timestamp < ?", olderThan).Delete(&domain.StatusCheck{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge status checks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Gorm) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// patchColumns converts a ProductPatch to a gorm Updates map holding
// only the fields the caller actually supplied. Features are stored
// serialized, so the slice is marshalled here; map updates bypass the
// field serializer.
func patchColumns(patch domain.ProductPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Model != nil {
		updates["model"] = *patch.Model
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.Storage != nil {
		updates["storage"] = *patch.Storage
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Condition != nil {
		updates["condition"] = *patch.Condition
	}
	if patch.BatteryHealth != nil {
		updates["battery_health"] = *patch.BatteryHealth
	}
	if patch.PriceARS != nil {
		updates["price_ars"] = *patch.PriceARS
	}
	if patch.PriceUSD != nil {
		updates["price_usd"] = *patch.PriceUSD
	}
	if patch.ScreenSize != nil {
		updates["screen_size"] = *patch.ScreenSize
	}
	if patch.Chip != nil {
		updates["chip"] = *patch.Chip
	}
	if patch.Camera != nil {
		updates["camera"] = *patch.Camera
	}
	if patch.Features != nil {
		raw, err := json.Marshal(*patch.Features)
		if err != nil {
			return nil, fmt.Errorf("marshal features: %w", err)
		}
		updates["features"] = string(raw)
	}
	if patch.Available != nil {
		updates["available"] = *patch.Available
	}
	if patch.WarrantyMonths != nil {
		updates["warranty_months"] = *patch.WarrantyMonths
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	return updates, nil
}
