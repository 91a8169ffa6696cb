package domain

import (
	"strings"
	"time"
)

// Product condition grades, from factory-sealed down to visibly used.
const (
	ConditionSealed    = "sealed"
	ConditionLikeNew   = "like-new"
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
)

// ValidCondition reports whether s is one of the known condition grades.
func ValidCondition(s string) bool {
	switch s {
	case ConditionSealed, ConditionLikeNew, ConditionExcellent, ConditionGood:
		return true
	}
	return false
}

// Product is a single phone listing in the catalog.
type Product struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Name           string    `gorm:"index" json:"name"`
	Model          string    `gorm:"index;size:32" json:"model"` // 11, 12, 13, 14, 15, 16, 17, se
	Type           string    `gorm:"size:32" json:"type"`        // pro-max, pro, plus, normal, mini, se
	Storage        string    `gorm:"size:32" json:"storage"`     // 64GB .. 1TB
	Color          string    `gorm:"size:64" json:"color"`
	Condition      string    `gorm:"index;size:32" json:"condition"`
	BatteryHealth  int       `json:"battery_health"` // 0-100
	PriceARS       float64   `json:"price_ars"`
	PriceUSD       float64   `json:"price_usd"`
	ScreenSize     string    `gorm:"size:32" json:"screen_size"`
	Chip           string    `gorm:"size:64" json:"chip"`
	Camera         string    `gorm:"size:128" json:"camera"`
	Features       []string  `gorm:"serializer:json;type:text" json:"features"`
	Available      bool      `json:"available"`
	WarrantyMonths int       `json:"warranty_months"`
	Category       string    `gorm:"index;size:64" json:"category"`
	Description    string    `gorm:"size:2048" json:"description"`
	ImageURL       string    `gorm:"size:1024" json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// ProductPatch carries a partial update. Nil fields were omitted by the
// caller and must keep their stored value; non-nil fields overwrite,
// including overwrites to a zero value.
type ProductPatch struct {
	Name           *string   `json:"name"`
	Model          *string   `json:"model"`
	Type           *string   `json:"type"`
	Storage        *string   `json:"storage"`
	Color          *string   `json:"color"`
	Condition      *string   `json:"condition"`
	BatteryHealth  *int      `json:"battery_health"`
	PriceARS       *float64  `json:"price_ars"`
	PriceUSD       *float64  `json:"price_usd"`
	ScreenSize     *string   `json:"screen_size"`
	Chip           *string   `json:"chip"`
	Camera         *string   `json:"camera"`
	Features       *[]string `json:"features"`
	Available      *bool     `json:"available"`
	WarrantyMonths *int      `json:"warranty_months"`
	Category       *string   `json:"category"`
	Description    *string   `json:"description"`
	ImageURL       *string   `json:"image_url"`
}

// Apply merges the patch into p, leaving omitted fields untouched.
func (u ProductPatch) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Model != nil {
		p.Model = *u.Model
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Storage != nil {
		p.Storage = *u.Storage
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	if u.Condition != nil {
		p.Condition = *u.Condition
	}
	if u.BatteryHealth != nil {
		p.BatteryHealth = *u.BatteryHealth
	}
	if u.PriceARS != nil {
		p.PriceARS = *u.PriceARS
	}
	if u.PriceUSD != nil {
		p.PriceUSD = *u.PriceUSD
	}
	if u.ScreenSize != nil {
		p.ScreenSize = *u.ScreenSize
	}
	if u.Chip != nil {
		p.Chip = *u.Chip
	}
	if u.Camera != nil {
		p.Camera = *u.Camera
	}
	if u.Features != nil {
		p.Features = *u.Features
	}
	if u.Available != nil {
		p.Available = *u.Available
	}
	if u.WarrantyMonths != nil {
		p.WarrantyMonths = *u.WarrantyMonths
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
}

// ProductFilter holds the optional list filters. Set filters are
// combined with AND; Search matches as a substring against any of
// name, color, chip, description or a single feature tag.
type ProductFilter struct {
	Model       string
	Type        string
	Condition   string
	Category    string
	Available   *bool
	MinBattery  *int
	MaxPriceARS *float64
	MaxPriceUSD *float64
	Search      string
}

// Matches reports whether p passes every set filter.
func (f ProductFilter) Matches(p *Product) bool {
	if f.Model != "" && p.Model != f.Model {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Condition != "" && p.Condition != f.Condition {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	if f.MinBattery != nil && p.BatteryHealth < *f.MinBattery {
		return false
	}
	if f.MaxPriceARS != nil && p.PriceARS > *f.MaxPriceARS {
		return false
	}
	if f.MaxPriceUSD != nil && p.PriceUSD > *f.MaxPriceUSD {
		return false
	}
	if f.Search != "" && !f.matchesSearch(p) {
		return false
	}
	return true
}

// matchesSearch is a plain case-insensitive substring test. No
// tokenization, no ranking.
func (f ProductFilter) matchesSearch(p *Product) bool {
	term := strings.ToLower(f.Search)
	for _, field := range []string{p.Name, p.Color, p.Chip, p.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, feature := range p.Features {
		if strings.Contains(strings.ToLower(feature), term) {
			return true
		}
	}
	return false
}
