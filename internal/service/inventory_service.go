package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"csemotors/internal/cache"
	apperrors "csemotors/internal/errors"
	"csemotors/internal/model"
	"csemotors/internal/repository"
)

const (
	classificationsCacheKey = "nav:classifications"
	classificationsCacheTTL = 5 * time.Minute
)

// InventoryService handles classification and vehicle operations.
type InventoryService interface {
	Classifications(ctx context.Context) ([]model.Classification, error)
	VehiclesByClassification(ctx context.Context, classificationID uint) (*model.Classification, []model.Vehicle, error)
	VehicleByID(ctx context.Context, id uint) (*model.Vehicle, error)
	AddClassification(ctx context.Context, name string) (*model.Classification, error)
	AddVehicle(ctx context.Context, vehicle *model.Vehicle) error
}

type inventoryService struct {
	inventory repository.InventoryRepository
	cache     *cache.Client
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventory repository.InventoryRepository, cacheClient *cache.Client) InventoryService {
	return &inventoryService{
		inventory: inventory,
		cache:     cacheClient,
	}
}

// Classifications returns the nav classification list, cached since every
// rendered page asks for it. Cache failures read as a miss.
func (s *inventoryService) Classifications(ctx context.Context) ([]model.Classification, error) {
	if data, _ := s.cache.Get(ctx, classificationsCacheKey); data != nil {
		var cached []model.Classification
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	classifications, err := s.inventory.ListClassifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}

	if payload, err := json.Marshal(classifications); err == nil {
		_ = s.cache.Set(ctx, classificationsCacheKey, payload, classificationsCacheTTL)
	}
	return classifications, nil
}

// VehiclesByClassification returns a classification and its inventory.
func (s *inventoryService) VehiclesByClassification(ctx context.Context, classificationID uint) (*model.Classification, []model.Vehicle, error) {
	classification, err := s.inventory.FindClassificationByID(ctx, classificationID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, apperrors.ErrVehicleNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find classification: %w", err)
	}

	vehicles, err := s.inventory.ListVehiclesByClassification(ctx, classificationID)
	if err != nil {
		return nil, nil, fmt.Errorf("list vehicles: %w", err)
	}
	return classification, vehicles, nil
}

// VehicleByID returns a single vehicle with its classification.
func (s *inventoryService) VehicleByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	vehicle, err := s.inventory.FindVehicleByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return vehicle, nil
}

// AddClassification creates a classification and invalidates the nav cache.
func (s *inventoryService) AddClassification(ctx context.Context, name string) (*model.Classification, error) {
	classification := &model.Classification{Name: name}
	if err := s.inventory.CreateClassification(ctx, classification); err != nil {
		return nil, fmt.Errorf("create classification: %w", err)
	}
	_ = s.cache.Delete(ctx, classificationsCacheKey)
	return classification, nil
}

// AddVehicle creates an inventory item under an existing classification.
func (s *inventoryService) AddVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	if _, err := s.inventory.FindClassificationByID(ctx, vehicle.ClassificationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrVehicleNotFound
		}
		return fmt.Errorf("find classification: %w", err)
	}
	if err := s.inventory.CreateVehicle(ctx, vehicle); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}
