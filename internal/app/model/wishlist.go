package model

import (
	"time"
)

// Wishlist is the per-user saved-products container, one row per user.
type Wishlist struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User           `gorm:"foreignKey:UserID" json:"-"`
	Items []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem is set membership of a product in a wishlist. The composite
// unique index makes duplicate adds impossible; rows are hard-deleted.
type WishlistItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WishlistID uint      `gorm:"not null;uniqueIndex:idx_wishlist_items_wishlist_product" json:"wishlist_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_items_wishlist_product" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`

	Wishlist Wishlist `gorm:"foreignKey:WishlistID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
