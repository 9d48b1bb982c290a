package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile extends a User with contact and wallet details. Exactly one row
// exists per user; the unique index on user_id backs the get-or-create path.
type Profile struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	UserID        uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone         string          `gorm:"type:varchar(20)" json:"phone"`
	Address       string          `gorm:"type:text" json:"address"`
	AvatarURL     string          `json:"avatar_url"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
