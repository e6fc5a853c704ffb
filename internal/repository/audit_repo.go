package repository

import (
	"go-pos-ledger/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *model.AuditEntry) error
	FindRecent(limit int) ([]model.AuditEntry, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditEntry) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) FindRecent(limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []model.AuditEntry
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
