package model

import "time"

// RevokedToken is a revocation ledger entry: the exact signed token string
// that must never authenticate again, regardless of its remaining validity
// window. Entries are written on logout and after a password-reset token is
// used, and are never deleted. The table therefore grows with every logout;
// no cleanup of naturally-expired entries is performed.
type RevokedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:500;not null"`
	RevokedAt time.Time `json:"revoked_at" gorm:"not null"`
}
