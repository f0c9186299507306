package tenant

import "gorm.io/gorm"

// Scope restricts a query to one organization.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

// TableScope is Scope for joined queries where the column must be qualified.
func TableScope(table, organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".organization_id = ?", organizationID)
	}
}

// AdminScope restricts a query to rows owned by one admin of the organization.
func AdminScope(organizationID, adminID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ? AND admin_id = ?", organizationID, adminID)
	}
}
