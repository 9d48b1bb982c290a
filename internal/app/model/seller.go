package model

import (
	"time"
)

// Seller is the shop-owner extension of a User, one row per user.
type Seller struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ShopName    string    `gorm:"not null" json:"shop_name"`
	ShopAddress string    `gorm:"type:text" json:"shop_address"`
	Contact     string    `gorm:"type:varchar(20)" json:"contact"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Seller) TableName() string {
	return "sellers"
}
