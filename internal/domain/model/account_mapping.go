package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/valueobject"
)

// AccountMapping binds an account role of a product (or of every product of
// a type, when productID is nil) to a GL account. A mapping may be narrowed to
// one payment type or one charge, never both.
type AccountMapping struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	productType   valueobject.ProductType
	productID     uuid.UUID
	role          valueobject.AccountRole
	glAccountID   uuid.UUID
	paymentTypeID uuid.UUID
	chargeID      uuid.UUID
	createdAt     time.Time
}

// NewAccountMapping validates the role against the product type and that the
// target account can receive postings.
func NewAccountMapping(
	tenantID uuid.UUID,
	productType valueobject.ProductType,
	productID uuid.UUID,
	role valueobject.AccountRole,
	glAccount GLAccount,
	paymentTypeID, chargeID uuid.UUID,
	now time.Time,
) (AccountMapping, error) {
	if tenantID == uuid.Nil {
		return AccountMapping{}, invalid("tenant ID is required")
	}
	if !role.MappableFor(productType) {
		return AccountMapping{}, fmt.Errorf("%w: %s on %s", ErrInvalidRole, role, productType)
	}
	if paymentTypeID != uuid.Nil && chargeID != uuid.Nil {
		return AccountMapping{}, invalid("a mapping may target a payment type or a charge, not both")
	}
	if glAccount.TenantID() != tenantID {
		return AccountMapping{}, invalid("GL account belongs to another tenant")
	}
	if err := glAccount.CheckPostable(); err != nil {
		return AccountMapping{}, err
	}
	return AccountMapping{
		id:            uuid.New(),
		tenantID:      tenantID,
		productType:   productType,
		productID:     productID,
		role:          role,
		glAccountID:   glAccount.ID(),
		paymentTypeID: paymentTypeID,
		chargeID:      chargeID,
		createdAt:     now,
	}, nil
}

// ReconstructAccountMapping recreates an AccountMapping from persistence.
func ReconstructAccountMapping(
	id, tenantID uuid.UUID,
	productType valueobject.ProductType,
	productID uuid.UUID,
	role valueobject.AccountRole,
	glAccountID, paymentTypeID, chargeID uuid.UUID,
	createdAt time.Time,
) AccountMapping {
	return AccountMapping{
		id:            id,
		tenantID:      tenantID,
		productType:   productType,
		productID:     productID,
		role:          role,
		glAccountID:   glAccountID,
		paymentTypeID: paymentTypeID,
		chargeID:      chargeID,
		createdAt:     createdAt,
	}
}

// IsDefault reports whether the mapping applies to every product of its type.
func (m AccountMapping) IsDefault() bool { return m.productID == uuid.Nil }

// Accessors
func (m AccountMapping) ID() uuid.UUID                        { return m.id }
func (m AccountMapping) TenantID() uuid.UUID                  { return m.tenantID }
func (m AccountMapping) ProductType() valueobject.ProductType { return m.productType }
func (m AccountMapping) ProductID() uuid.UUID                 { return m.productID }
func (m AccountMapping) Role() valueobject.AccountRole        { return m.role }
func (m AccountMapping) GLAccountID() uuid.UUID               { return m.glAccountID }
func (m AccountMapping) PaymentTypeID() uuid.UUID             { return m.paymentTypeID }
func (m AccountMapping) ChargeID() uuid.UUID                  { return m.chargeID }
func (m AccountMapping) CreatedAt() time.Time                 { return m.createdAt }

type mappingKey struct {
	productID     uuid.UUID
	role          valueobject.AccountRole
	paymentTypeID uuid.UUID
	chargeID      uuid.UUID
}

// MappingSet indexes the mappings that can serve one product: its own and the
// defaults of its product type. It is read-only once built and safe to share.
type MappingSet struct {
	productType valueobject.ProductType
	productID   uuid.UUID
	byKey       map[mappingKey]AccountMapping
}

// NewMappingSet indexes mappings for productID. Mappings of other products or
// product types are ignored.
func NewMappingSet(productType valueobject.ProductType, productID uuid.UUID, mappings []AccountMapping) MappingSet {
	s := MappingSet{
		productType: productType,
		productID:   productID,
		byKey:       make(map[mappingKey]AccountMapping, len(mappings)),
	}
	for _, m := range mappings {
		if m.productType != productType {
			continue
		}
		if !m.IsDefault() && m.productID != productID {
			continue
		}
		s.byKey[mappingKey{m.productID, m.role, m.paymentTypeID, m.chargeID}] = m
	}
	return s
}

// Lookup resolves a role in this order: product with payment type or charge,
// product, default with payment type or charge, default.
func (s MappingSet) Lookup(role valueobject.AccountRole, paymentTypeID, chargeID uuid.UUID) (AccountMapping, bool) {
	owners := []uuid.UUID{s.productID, uuid.Nil}
	if s.productID == uuid.Nil {
		owners = owners[1:]
	}
	for _, owner := range owners {
		if paymentTypeID != uuid.Nil {
			if m, ok := s.byKey[mappingKey{owner, role, paymentTypeID, uuid.Nil}]; ok {
				return m, true
			}
		}
		if chargeID != uuid.Nil {
			if m, ok := s.byKey[mappingKey{owner, role, uuid.Nil, chargeID}]; ok {
				return m, true
			}
		}
		if m, ok := s.byKey[mappingKey{owner, role, uuid.Nil, uuid.Nil}]; ok {
			return m, true
		}
	}
	return AccountMapping{}, false
}

// Len returns the number of indexed mappings.
func (s MappingSet) Len() int { return len(s.byKey) }

func (s MappingSet) ProductType() valueobject.ProductType { return s.productType }
func (s MappingSet) ProductID() uuid.UUID                 { return s.productID }
