package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VendorTypeGallery = "gallery"
	VendorTypeOutside = "outside"
)

// Vendor is a seller. Exactly one of GalleryVendorData / OutsideVendorData
// attaches 1:1, selected by VendorType (tagged union, not inheritance).
type Vendor struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	ContactNumber string    `gorm:"column:contact_number;uniqueIndex;not null" json:"contact_number"`
	VendorType    string    `gorm:"column:vendor_type;type:varchar(20);not null" json:"vendor_type"`
	TrustScore    int       `gorm:"column:trust_score;default:0" json:"trust_score"`
	KYCStatus     string    `gorm:"column:kyc_status;type:varchar(20);default:'pending'" json:"kyc_status"`
	Status        string    `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	GalleryData *GalleryVendorData `gorm:"foreignKey:VendorID" json:"gallery_data,omitempty"`
	OutsideData *OutsideVendorData `gorm:"foreignKey:VendorID" json:"outside_data,omitempty"`
}

func (Vendor) TableName() string {
	return "vendors"
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// GalleryVendorData holds the gallery-pickup side of the vendor union.
type GalleryVendorData struct {
	VendorID    uuid.UUID `gorm:"column:vendor_id;type:uuid;primaryKey" json:"vendor_id"`
	GalleryName string    `gorm:"column:gallery_name;not null" json:"gallery_name"`
	ShopNumber  string    `gorm:"column:shop_number" json:"shop_number"`
	Zone        string    `gorm:"column:zone" json:"zone"`
}

func (GalleryVendorData) TableName() string {
	return "gallery_vendor_data"
}

// OutsideVendorData holds the delivery side of the vendor union.
type OutsideVendorData struct {
	VendorID     uuid.UUID `gorm:"column:vendor_id;type:uuid;primaryKey" json:"vendor_id"`
	DeliveryZone string    `gorm:"column:delivery_zone" json:"delivery_zone"`
	Address      string    `gorm:"column:address" json:"address"`
}

func (OutsideVendorData) TableName() string {
	return "outside_vendor_data"
}

// Buyer places reservations and orders.
type Buyer struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	ContactNumber string    `gorm:"column:contact_number;uniqueIndex;not null" json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Buyer) TableName() string {
	return "buyers"
}

func (b *Buyer) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
