package repository

import (
	"context"

	"gorm.io/gorm"

	"csemotors/internal/model"
)

// InventoryRepository defines classification and vehicle persistence operations.
type InventoryRepository interface {
	ListClassifications(ctx context.Context) ([]model.Classification, error)
	CreateClassification(ctx context.Context, classification *model.Classification) error
	FindClassificationByID(ctx context.Context, id uint) (*model.Classification, error)
	ListVehiclesByClassification(ctx context.Context, classificationID uint) ([]model.Vehicle, error)
	FindVehicleByID(ctx context.Context, id uint) (*model.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error
}

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository builds a GORM-backed repository.
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListClassifications(ctx context.Context) ([]model.Classification, error) {
	var classifications []model.Classification
	if err := r.db.WithContext(ctx).Order("name").Find(&classifications).Error; err != nil {
		return nil, err
	}
	return classifications, nil
}

func (r *inventoryRepository) CreateClassification(ctx context.Context, classification *model.Classification) error {
	return r.db.WithContext(ctx).Create(classification).Error
}

func (r *inventoryRepository) FindClassificationByID(ctx context.Context, id uint) (*model.Classification, error) {
	var classification model.Classification
	if err := r.db.WithContext(ctx).First(&classification, id).Error; err != nil {
		return nil, err
	}
	return &classification, nil
}

func (r *inventoryRepository) ListVehiclesByClassification(ctx context.Context, classificationID uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("classification_id = ?", classificationID).
		Order("make, model").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *inventoryRepository) FindVehicleByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Preload("Classification").First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *inventoryRepository) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}
