package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shoplist/internal/auth"
	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
)

type revokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository builds the GORM-backed revocation ledger.
// Entries are insert-only; nothing ever deletes them, so the table grows
// with every logout and used reset link. That is acceptable at this
// system's scale but worth knowing when sizing the database.
func NewRevokedTokenRepository(db *gorm.DB) auth.RevocationLedger {
	return &revokedTokenRepository{db: db}
}

// Revoke inserts the exact token string with the current timestamp. The
// unique index on the token column makes concurrent revocations of the same
// token resolve to one insert and one ErrAlreadyRevoked.
func (r *revokedTokenRepository) Revoke(ctx context.Context, token string) error {
	entry := &model.RevokedToken{
		Token:     token,
		RevokedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyRevoked
		}
		return err
	}
	return nil
}

func (r *revokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.RevokedToken{}).
		Where("token = ?", token).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
