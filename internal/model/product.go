package model

type Product struct {
	BaseModel
	// Barcode is system-generated at registration when the client omits it.
	Barcode  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"barcode"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand    string `gorm:"type:varchar(255)" json:"brand"`
	Price    int64  `gorm:"default:0" json:"price" validate:"gte=0"` // cents
	Quantity int    `gorm:"default:0" json:"quantity" validate:"gte=0"`
	ImageURL string `gorm:"type:text" json:"image_url"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`

	SaleLines []SaleLine `json:"sale_lines,omitempty"`
}
