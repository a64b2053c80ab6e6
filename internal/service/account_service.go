package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"csemotors/internal/auth"
	apperrors "csemotors/internal/errors"
	"csemotors/internal/model"
	"csemotors/internal/repository"
)

// AccountService handles registration, login, and account maintenance.
type AccountService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*model.Account, error)
	Login(ctx context.Context, email, password string) (token string, identity *auth.Identity, err error)
	UpdateProfile(ctx context.Context, accountID uint, firstName, lastName, email string) (token string, identity *auth.Identity, err error)
	UpdatePassword(ctx context.Context, accountID uint, password string) error
}

type accountService struct {
	accounts   repository.AccountRepository
	jwtService *auth.JWTService
}

// NewAccountService creates a new account service.
func NewAccountService(accounts repository.AccountRepository, jwtService *auth.JWTService) AccountService {
	return &accountService{
		accounts:   accounts,
		jwtService: jwtService,
	}
}

// Register creates a new account with a hashed password. The role is
// always Client; registration never accepts a caller-supplied role.
func (s *accountService) Register(ctx context.Context, firstName, lastName, email, password string) (*model.Account, error) {
	email = normalizeEmail(email)

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailInUse
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleClient,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// Login authenticates an account and returns a signed auth token plus the
// identity it embeds. A missing account and a wrong password produce the
// same error so callers cannot enumerate emails.
func (s *accountService) Login(ctx context.Context, email, password string) (string, *auth.Identity, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, account.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	identity := identityOf(account)
	token, err := s.jwtService.Issue(identity, auth.TokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, &identity, nil
}

// UpdateProfile updates names and email for the given account id and
// returns a fresh token so the cookie identity matches the new data.
// The id must come from the verified session identity, never the form.
func (s *accountService) UpdateProfile(ctx context.Context, accountID uint, firstName, lastName, email string) (string, *auth.Identity, error) {
	email = normalizeEmail(email)

	current, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return "", nil, fmt.Errorf("load account: %w", err)
	}

	if email != current.Email {
		other, err := s.accounts.FindByEmail(ctx, email)
		if err == nil && other != nil && other.ID != accountID {
			return "", nil, apperrors.ErrEmailInUse
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return "", nil, fmt.Errorf("check email: %w", err)
		}
	}

	if err := s.accounts.UpdateProfile(ctx, accountID, firstName, lastName, email); err != nil {
		return "", nil, fmt.Errorf("update account: %w", err)
	}

	updated, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return "", nil, fmt.Errorf("reload account: %w", err)
	}

	identity := identityOf(updated)
	token, err := s.jwtService.Issue(identity, auth.TokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, &identity, nil
}

// UpdatePassword hashes and stores a new password for the account.
func (s *accountService) UpdatePassword(ctx context.Context, accountID uint, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(ctx, accountID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// identityOf trims an account down to its token claims. The password hash
// stays behind here; Identity has no field that could carry it.
func identityOf(account *model.Account) auth.Identity {
	return auth.Identity{
		AccountID: account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      model.NormalizeRole(account.Role),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
