package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Office is a node in a tenant's branch hierarchy. Closures of an office
// also freeze every office below it.
type Office struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	parentID  uuid.UUID
	name      string
	hierarchy string
	createdAt time.Time
}

// NewOffice creates an office under parent, or a head office when parent is nil.
func NewOffice(tenantID uuid.UUID, name string, parent *Office, now time.Time) (Office, error) {
	if tenantID == uuid.Nil {
		return Office{}, invalid("tenant ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return Office{}, invalid("office name is required")
	}

	o := Office{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      name,
		createdAt: now,
	}
	base := "."
	if parent != nil {
		if parent.tenantID != tenantID {
			return Office{}, invalid("parent office belongs to another tenant")
		}
		o.parentID = parent.id
		base = parent.hierarchy
	}
	o.hierarchy = base + o.id.String() + "."
	return o, nil
}

// ReconstructOffice recreates an Office from persistence.
func ReconstructOffice(id, tenantID, parentID uuid.UUID, name, hierarchy string, createdAt time.Time) Office {
	return Office{
		id:        id,
		tenantID:  tenantID,
		parentID:  parentID,
		name:      name,
		hierarchy: hierarchy,
		createdAt: createdAt,
	}
}

// IsRoot reports whether the office has no parent.
func (o Office) IsRoot() bool { return o.parentID == uuid.Nil }

// IsDescendantOf reports whether o sits at or below other in the hierarchy.
func (o Office) IsDescendantOf(other Office) bool {
	return other.hierarchy != "" && strings.HasPrefix(o.hierarchy, other.hierarchy)
}

// Accessors
func (o Office) ID() uuid.UUID        { return o.id }
func (o Office) TenantID() uuid.UUID  { return o.tenantID }
func (o Office) ParentID() uuid.UUID  { return o.parentID }
func (o Office) Name() string         { return o.name }
func (o Office) Hierarchy() string    { return o.hierarchy }
func (o Office) CreatedAt() time.Time { return o.createdAt }
