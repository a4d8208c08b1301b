package repository

import (
	"context"
	"errors"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormBaggageClaimRepository implements the BaggageClaimRepository interface
type GormBaggageClaimRepository struct {
	db *gorm.DB
}

// NewGormBaggageClaimRepository creates a new GORM baggage claim repository
func NewGormBaggageClaimRepository(db *gorm.DB) repository.BaggageClaimRepository {
	return &GormBaggageClaimRepository{
		db: db,
	}
}

// BaggageClaims GORM model for database mapping
type BaggageClaims struct {
	ID        uint           `gorm:"primaryKey"`
	Number    string         `gorm:"column:number"`
	Terminal  string         `gorm:"column:terminal"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (BaggageClaims) TableName() string {
	return "m_baggage_claims"
}

// FindByID finds a baggage claim by id
func (r *GormBaggageClaimRepository) FindByID(ctx context.Context, id uint) (*entity.BaggageClaim, error) {
	var claim BaggageClaims
	result := r.db.WithContext(ctx).First(&claim, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toBaggageClaimEntity(&claim), nil
}

// toBaggageClaimEntity converts a GORM model to a domain entity
func toBaggageClaimEntity(model *BaggageClaims) *entity.BaggageClaim {
	return &entity.BaggageClaim{
		ID:        model.ID,
		Number:    model.Number,
		Terminal:  model.Terminal,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: model.DeletedAt,
	}
}
