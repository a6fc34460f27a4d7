package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleSupport  Role = "support"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSupport:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"type:text;not null"` // уникальность через индекс lower(email)
	Role      Role      `gorm:"type:text;not null;default:'customer';index"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

type Profile struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName string     `gorm:"type:text"`
	LastName  string     `gorm:"type:text"`
	Bio       string     `gorm:"type:text"`
	BirthDate *time.Time `gorm:"type:date"`
	CreatedAt time.Time  `gorm:"not null;default:now()"`
	UpdatedAt time.Time  `gorm:"not null;default:now()"`
}

func (Profile) TableName() string { return "profiles" }

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SKU           *string   `gorm:"type:text"` // опционально; UNIQUE lower(sku) в миграции
	Name          string    `gorm:"type:text;not null"`
	Description   string    `gorm:"type:text"`
	PriceCents    int64     `gorm:"not null;default:0"`
	StockQuantity int32     `gorm:"type:int;not null;default:0"`
	CreatedAt     time.Time `gorm:"not null;default:now();index"`
	UpdatedAt     time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status           OrderStatus `gorm:"type:text;not null;default:'pending';index"`
	TotalAmountCents int64       `gorm:"not null;default:0"`
	ShippingAddress  string      `gorm:"type:text"`
	BillingAddress   string      `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID            uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	Quantity             int32     `gorm:"type:int;not null"`
	PriceAtPurchaseCents int64     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotalCents is quantity times the snapshot price.
func (i OrderItem) LineTotalCents() int64 {
	return int64(i.Quantity) * i.PriceAtPurchaseCents
}
