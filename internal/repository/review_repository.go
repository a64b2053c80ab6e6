package repository

import (
	"context"

	"gorm.io/gorm"

	"csemotors/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	ListByVehicle(ctx context.Context, vehicleID uint) ([]model.Review, error)
	ListByAccount(ctx context.Context, accountID uint) ([]model.Review, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Review, error)
	Update(ctx context.Context, id uint, text string) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByVehicle(ctx context.Context, vehicleID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Preload("Account").
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByAccount(ctx context.Context, accountID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Vehicle").
		Joins("JOIN accounts ON accounts.id = reviews.account_id").
		Where("accounts.role = ?", string(role)).
		Order("reviews.created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, id uint, text string) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", id).
		Update("text", text).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}
