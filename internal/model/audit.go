package model

import "time"

// AuditEntry is an append-only record of who did what. Never updated or
// deleted by the normal flow.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(255);index" json:"user_id"`
	Username  string    `gorm:"type:varchar(255)" json:"username"`
	Role      string    `gorm:"type:varchar(50)" json:"role"`
	Action    string    `gorm:"type:text;not null" json:"action"`
	Entity    string    `gorm:"type:varchar(255)" json:"entity"` // affected entity, e.g. "product:<id>"
	CreatedAt time.Time `json:"created_at"`
}
