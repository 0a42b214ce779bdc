package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile 用户资料, 对应表 profiles
type Profile struct {
	ID           string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Email        string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uk_email" json:"email"`
	Role         string     `gorm:"column:role;type:varchar(16);not null;default:user" json:"role"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	ConfirmedAt  *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
