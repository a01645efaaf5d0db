package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shoplist/internal/auth"
	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockRevocationLedger is a mock implementation of auth.RevocationLedger.
type MockRevocationLedger struct {
	mock.Mock
}

func (m *MockRevocationLedger) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRevocationLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

func newTestAuthService(users *MockUserRepository, ledger *MockRevocationLedger, mailer *MockMailer) AuthService {
	tokens := auth.NewTokenService("test-secret", time.Hour, 30*time.Minute, ledger)
	return NewAuthService(users, ledger, tokens, mailer, "http://localhost:8080/auth/reset-password")
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		password       string
		setupMock      func(*MockUserRepository)
		expectedError  error
		wantValidation bool
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{ID: 1, Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "duplicate key on concurrent registration",
			email:    "race@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:           "email too short",
			email:          "a@b",
			password:       "password123",
			setupMock:      func(m *MockUserRepository) {},
			wantValidation: true,
		},
		{
			name:           "password too short",
			email:          "test@example.com",
			password:       "abc",
			setupMock:      func(m *MockUserRepository) {},
			wantValidation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockRevocationLedger), new(MockMailer))
			user, err := service.Register(context.Background(), tt.email, tt.password)

			switch {
			case tt.wantValidation:
				var verr *apperrors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Nil(t, user)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           5,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
		},
		{
			name:     "password with surrounding whitespace matches its registration",
			email:    "test@example.com",
			password: "  password123  ",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           5,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           5,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockRevocationLedger), new(MockMailer))
			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockRevocationLedger)
		wantErr   bool
	}{
		{
			name: "revokes the token",
			setupMock: func(m *MockRevocationLedger) {
				m.On("Revoke", mock.Anything, "some-token").Return(nil)
			},
		},
		{
			name: "second logout is a no-op",
			setupMock: func(m *MockRevocationLedger) {
				m.On("Revoke", mock.Anything, "some-token").Return(apperrors.ErrAlreadyRevoked)
			},
		},
		{
			name: "ledger failure surfaces",
			setupMock: func(m *MockRevocationLedger) {
				m.On("Revoke", mock.Anything, "some-token").Return(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLedger := new(MockRevocationLedger)
			tt.setupMock(mockLedger)

			service := newTestAuthService(new(MockUserRepository), mockLedger, new(MockMailer))
			err := service.Logout(context.Background(), "some-token")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockLedger.AssertExpectations(t)
		})
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Run("mails a reset link", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{ID: 5, Email: "test@example.com"}, nil)
		mockMailer.On("Send", "test@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "auth_token=")
		})).Return(nil)

		service := newTestAuthService(mockRepo, new(MockRevocationLedger), mockMailer)
		err := service.RequestPasswordReset(context.Background(), "test@example.com")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("unknown email does not leak", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(mockRepo, new(MockRevocationLedger), mockMailer)
		err := service.RequestPasswordReset(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivery failure is reported", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{ID: 5, Email: "test@example.com"}, nil)
		mockMailer.On("Send", "test@example.com", mock.Anything, mock.Anything).Return(assert.AnError)

		service := newTestAuthService(mockRepo, new(MockRevocationLedger), mockMailer)
		err := service.RequestPasswordReset(context.Background(), "test@example.com")

		assert.ErrorIs(t, err, apperrors.ErrMailDelivery)
	})
}

func TestAuthService_ConfirmPasswordReset(t *testing.T) {
	ledger := new(MockRevocationLedger)
	tokens := auth.NewTokenService("test-secret", time.Hour, 30*time.Minute, ledger)
	resetToken, err := tokens.IssueReset(5)
	assert.NoError(t, err)

	t.Run("stores a new password and revokes the token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		ledger.On("IsRevoked", mock.Anything, resetToken).Return(false, nil).Once()
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, Email: "test@example.com"}, nil)
		mockRepo.On("UpdatePassword", mock.Anything, uint(5), mock.AnythingOfType("string")).Return(nil)
		ledger.On("Revoke", mock.Anything, resetToken).Return(nil).Once()
		mockMailer.On("Send", "test@example.com", mock.Anything, mock.Anything).Return(nil)

		service := NewAuthService(mockRepo, ledger, tokens, mockMailer, "http://localhost:8080/auth/reset-password")
		err := service.ConfirmPasswordReset(context.Background(), resetToken)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		ledger.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("replaying a used link fails", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		ledger.On("IsRevoked", mock.Anything, resetToken).Return(true, nil).Once()

		service := NewAuthService(mockRepo, ledger, tokens, new(MockMailer), "http://localhost:8080/auth/reset-password")
		err := service.ConfirmPasswordReset(context.Background(), resetToken)

		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), ledger, tokens, new(MockMailer), "http://localhost:8080/auth/reset-password")
		err := service.ConfirmPasswordReset(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name           string
		password       string
		confirmation   string
		setupMock      func(*MockUserRepository)
		wantValidation bool
	}{
		{
			name:         "successful change",
			password:     "new-password",
			confirmation: "new-password",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdatePassword", mock.Anything, uint(5), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:           "confirmation mismatch",
			password:       "new-password",
			confirmation:   "other-password",
			setupMock:      func(m *MockUserRepository) {},
			wantValidation: true,
		},
		{
			name:           "password too short",
			password:       "abc",
			confirmation:   "abc",
			setupMock:      func(m *MockUserRepository) {},
			wantValidation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockRevocationLedger), new(MockMailer))
			err := service.ChangePassword(context.Background(), 5, tt.password, tt.confirmation)

			if tt.wantValidation {
				var verr *apperrors.ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
