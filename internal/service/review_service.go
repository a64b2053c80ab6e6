package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "csemotors/internal/errors"
	"csemotors/internal/model"
	"csemotors/internal/repository"
)

// ReviewService handles vehicle reviews with ownership checks.
type ReviewService interface {
	Add(ctx context.Context, accountID, vehicleID uint, text string) (*model.Review, error)
	ByID(ctx context.Context, id uint) (*model.Review, error)
	ForVehicle(ctx context.Context, vehicleID uint) ([]model.Review, error)
	ForAccount(ctx context.Context, accountID uint) ([]model.Review, error)
	ClientReviews(ctx context.Context) ([]model.Review, error)
	Update(ctx context.Context, id, accountID uint, role model.Role, text string) error
	Delete(ctx context.Context, id, accountID uint, role model.Role) error
}

type reviewService struct {
	reviews repository.ReviewRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository) ReviewService {
	return &reviewService{reviews: reviews}
}

func (s *reviewService) Add(ctx context.Context, accountID, vehicleID uint, text string) (*model.Review, error) {
	review := &model.Review{
		AccountID: accountID,
		VehicleID: vehicleID,
		Text:      text,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ByID(ctx context.Context, id uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ForVehicle(ctx context.Context, vehicleID uint) ([]model.Review, error) {
	return s.reviews.ListByVehicle(ctx, vehicleID)
}

func (s *reviewService) ForAccount(ctx context.Context, accountID uint) ([]model.Review, error) {
	return s.reviews.ListByAccount(ctx, accountID)
}

// ClientReviews lists all reviews left by client accounts, for the admin
// moderation screen.
func (s *reviewService) ClientReviews(ctx context.Context) ([]model.Review, error) {
	return s.reviews.ListByRole(ctx, model.RoleClient)
}

// Update edits a review. Only the owning account or an admin may edit.
func (s *reviewService) Update(ctx context.Context, id, accountID uint, role model.Role, text string) error {
	review, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if review.AccountID != accountID && !role.Is(model.RoleAdmin) {
		return apperrors.ErrNotReviewOwner
	}
	if err := s.reviews.Update(ctx, id, text); err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// Delete removes a review under the same ownership rule as Update.
func (s *reviewService) Delete(ctx context.Context, id, accountID uint, role model.Role) error {
	review, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if review.AccountID != accountID && !role.Is(model.RoleAdmin) {
		return apperrors.ErrNotReviewOwner
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
