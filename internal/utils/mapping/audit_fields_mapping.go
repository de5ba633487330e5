package mapping

import (
	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/agribooks/ledger-core/internal/models"
)

// ToModelAuditFields converts domain audit fields to the storage representation.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts storage audit fields to the domain representation.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// strOrEmpty resolves a nullable storage column to its documented default.
func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// strOrNil maps the empty string back to NULL at the storage boundary.
func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
