package model

import "github.com/google/uuid"

// SaleLine is one line of a committed checkout. Lines sharing a ReceiptID
// belong to the same checkout. Immutable once written.
type SaleLine struct {
	BaseModel
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product" validate:"-"` // relation - skip validation
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice int64     `gorm:"not null" json:"unit_price" validate:"gte=0"` // cents, caller-supplied (manual discounts allowed)
	Total     int64     `gorm:"not null" json:"total"`                       // snapshot quantity * unit_price

	// User tracking
	SellerUserID *string `gorm:"type:varchar(255)" json:"seller_user_id,omitempty"`
	SellerUser   *User   `gorm:"foreignKey:SellerUserID;references:ID" json:"seller_user,omitempty"`
}

// Receipt is the aggregate returned by a successful checkout.
type Receipt struct {
	ReceiptID uuid.UUID  `json:"receipt_id"`
	Lines     []SaleLine `json:"lines"`
	Total     int64      `json:"total"`
}
