package model

import "time"

// User represents a registry operator account
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string    `gorm:"not null" json:"name"`
	Role         string    `gorm:"type:varchar(20);default:'staff'" json:"role"` // staff, admin
	TokenVersion int       `gorm:"default:0" json:"-"`                           // Increment to invalidate all user tokens

	// Relationships
	TokenBlacklist []TokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TokenBlacklist stores revoked JWT token IDs until they expire
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"` // JTI claim
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Reason    string    `gorm:"type:varchar(50)" json:"reason"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}
