package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shoplist/internal/auth"
	apperrors "shoplist/internal/errors"
	"shoplist/internal/mail"
	"shoplist/internal/model"
	"shoplist/internal/repository"
)

const bcryptCost = 10

// Input minimums carried over from every prior iteration of this API.
const (
	minEmailLength    = 5
	minPasswordLength = 4
)

// AuthService handles registration, login and the password lifecycle.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uint, password, confirmation string) error
}

type authService struct {
	users        repository.UserRepository
	ledger       auth.RevocationLedger
	tokens       *auth.TokenService
	mailer       mail.Mailer
	resetURLBase string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	ledger auth.RevocationLedger,
	tokens *auth.TokenService,
	mailer mail.Mailer,
	resetURLBase string,
) AuthService {
	return &authService{
		users:        users,
		ledger:       ledger,
		tokens:       tokens,
		mailer:       mailer,
		resetURLBase: resetURLBase,
	}
}

// Register creates a new user with a hashed password. Validation happens
// before any store access; a duplicate email is reported distinctly and
// never silently overwritten.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if len(email) < minEmailLength || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Email cannot be less than %d characters", minEmailLength))
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Password cannot be less than %d characters", minPasswordLength))
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations can race past the existence check;
		// the unique index settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues a bearer token. Every failure mode
// collapses into the same invalid-credentials error so callers cannot probe
// which emails are registered.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	// Register hashes the trimmed password, so compare against the same bytes.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the presented token. Logging out twice with the same token
// is a no-op, not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.ledger.Revoke(ctx, token); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyRevoked) {
			return nil
		}
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RequestPasswordReset issues a short-lived reset token and mails a link
// carrying it. An unknown email returns nil so the endpoint does not leak
// which addresses are registered; only an actual delivery failure is
// reported.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := fmt.Sprintf("%s?auth_token=%s", s.resetURLBase, token)
	body := fmt.Sprintf("<p>Follow this link to reset your password:</p><p><a href=%q>%s</a></p>", link, link)
	if err := s.mailer.Send(user.Email, "Reset your shopping list password", body); err != nil {
		return apperrors.ErrMailDelivery
	}
	return nil
}

// ConfirmPasswordReset completes phase two of the reset flow: the link's
// token is verified through the regular token path (signature, expiry,
// ledger), a new random password is stored, and the token is revoked so the
// link cannot be replayed. The new password is then mailed to the user.
func (s *authService) ConfirmPasswordReset(ctx context.Context, token string) error {
	userID, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	password, err := randomPassword()
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	// The password is already changed at this point; a concurrent second
	// confirm hitting ErrAlreadyRevoked lost the race and that is fine.
	if err := s.ledger.Revoke(ctx, token); err != nil && !errors.Is(err, apperrors.ErrAlreadyRevoked) {
		return fmt.Errorf("revoke reset token: %w", err)
	}

	body := fmt.Sprintf("<p>Your password was reset. Your new password is:</p><p><b>%s</b></p><p>Please log in and change it.</p>", password)
	if err := s.mailer.Send(user.Email, "Your new shopping list password", body); err != nil {
		return apperrors.ErrMailDelivery
	}
	return nil
}

// ChangePassword replaces the password of an authenticated user. The
// password and its confirmation must match.
func (s *authService) ChangePassword(ctx context.Context, userID uint, password, confirmation string) error {
	password = strings.TrimSpace(password)
	confirmation = strings.TrimSpace(confirmation)
	if password != confirmation {
		return apperrors.NewValidationError("Password and confirmation do not match")
	}
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("Password cannot be less than %d characters", minPasswordLength))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

// randomPassword returns a 16-character hex string from a CSPRNG.
func randomPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
