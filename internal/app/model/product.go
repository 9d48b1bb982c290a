package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryBoys    ProductCategory = "Boys"
	CategoryGirls   ProductCategory = "Girls"
	CategoryMen     ProductCategory = "Men"
	CategoryWomen   ProductCategory = "Women"
	CategoryToddler ProductCategory = "Toddler"
)

type ProductSeason string

const (
	SeasonSummer    ProductSeason = "Summer"
	SeasonWinter    ProductSeason = "Winter"
	SeasonAllSeason ProductSeason = "All Season"
)

type Product struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Category      ProductCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Name          string          `gorm:"not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ReviewScore   float64         `gorm:"default:0" json:"review_score"` // average rating across reviews
	BuyCount      int             `gorm:"default:0" json:"buy_count"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	Dimensions    string          `gorm:"type:varchar(100)" json:"dimensions"`
	Weight        string          `gorm:"type:varchar(50)" json:"weight"`
	Offers        string          `gorm:"type:varchar(100)" json:"offers"`
	ImageURL      string          `json:"image_url"`
	Images        pq.StringArray  `gorm:"type:text[]" json:"images"` // gallery image URLs
	Season        ProductSeason   `gorm:"type:varchar(20);default:'All Season'" json:"season"`
	Fabric        string          `gorm:"type:varchar(50)" json:"fabric"`
	Texture       string          `gorm:"type:varchar(50)" json:"texture"`
	Brand         string          `gorm:"type:varchar(50)" json:"brand"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Reviews      []Review      `gorm:"foreignKey:ProductID" json:"-"`
	CartItems    []CartItem    `gorm:"foreignKey:ProductID" json:"-"`
	OrderedItems []OrderedItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
