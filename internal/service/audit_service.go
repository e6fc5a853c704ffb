package service

import (
	"log"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
)

// Actor is the verified identity performing an operation, carried as an
// explicit parameter rather than read from ambient storage.
type Actor struct {
	ID   string
	Name string
	Role string
}

// AuditNotifier appends one audit entry per committed action.
type AuditNotifier interface {
	Record(actor Actor, action, entity string)
}

type auditNotifier struct {
	auditRepo repository.AuditRepository
}

func NewAuditNotifier(auditRepo repository.AuditRepository) AuditNotifier {
	return &auditNotifier{auditRepo: auditRepo}
}

// Record is best-effort: a failed audit write never fails or rolls back the
// action it describes, it is only surfaced to the operator.
func (n *auditNotifier) Record(actor Actor, action, entity string) {
	entry := &model.AuditEntry{
		UserID:   actor.ID,
		Username: actor.Name,
		Role:     actor.Role,
		Action:   action,
		Entity:   entity,
	}
	if err := n.auditRepo.Create(entry); err != nil {
		log.Printf("Warning: failed to write audit entry (%s): %v", action, err)
	}
}
