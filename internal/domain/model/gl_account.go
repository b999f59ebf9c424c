package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/event"
	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
)

// GLAccount is an account in a tenant's chart of accounts. It is never
// deleted once created; disabling stops further postings.
type GLAccount struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	parentID     uuid.UUID
	name         string
	glCode       valueobject.GLCode
	accountType  valueobject.GLAccountType
	usage        valueobject.GLAccountUsage
	disabled     bool
	description  string
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []events.DomainEvent
}

// NewGLAccount creates an enabled GL account. parent is nil for a top-level
// account; otherwise it must be a HEADER account of the same type.
func NewGLAccount(
	tenantID uuid.UUID,
	name string,
	glCode valueobject.GLCode,
	accountType valueobject.GLAccountType,
	usage valueobject.GLAccountUsage,
	parent *GLAccount,
	description string,
	now time.Time,
) (GLAccount, error) {
	if tenantID == uuid.Nil {
		return GLAccount{}, invalid("tenant ID is required")
	}
	if name == "" {
		return GLAccount{}, invalid("GL account name is required")
	}
	if glCode.IsZero() {
		return GLAccount{}, invalid("GL code is required")
	}

	acct := GLAccount{
		id:          uuid.New(),
		tenantID:    tenantID,
		name:        name,
		glCode:      glCode,
		accountType: accountType,
		usage:       usage,
		description: description,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}

	if parent != nil {
		if parent.tenantID != tenantID {
			return GLAccount{}, fmt.Errorf("%w: parent GL account belongs to another tenant", ErrInvalidParent)
		}
		if parent.usage != valueobject.GLAccountUsageHeader {
			return GLAccount{}, fmt.Errorf("%w: parent %s is not a HEADER account", ErrInvalidParent, parent.glCode)
		}
		if parent.accountType != accountType {
			return GLAccount{}, fmt.Errorf("%w: parent %s is %s, account is %s",
				ErrInvalidParent, parent.glCode, parent.accountType, accountType)
		}
		acct.parentID = parent.id
	}

	return acct, nil
}

// ReconstructGLAccount recreates a GLAccount from persistence (no validation, no events).
func ReconstructGLAccount(
	id, tenantID, parentID uuid.UUID,
	name string,
	glCode valueobject.GLCode,
	accountType valueobject.GLAccountType,
	usage valueobject.GLAccountUsage,
	disabled bool,
	description string,
	version int,
	createdAt, updatedAt time.Time,
) GLAccount {
	return GLAccount{
		id:          id,
		tenantID:    tenantID,
		parentID:    parentID,
		name:        name,
		glCode:      glCode,
		accountType: accountType,
		usage:       usage,
		disabled:    disabled,
		description: description,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Disable stops the account accepting new postings (returns new copy).
func (a GLAccount) Disable(now time.Time) (GLAccount, error) {
	if a.disabled {
		return GLAccount{}, invalid("GL account %s is already disabled", a.glCode)
	}
	updated := a
	updated.disabled = true
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append(append([]events.DomainEvent{}, a.domainEvents...),
		event.NewGLAccountDisabled(a.tenantID, event.GLAccountDisabledData{
			GLAccountID: a.id,
			GLCode:      a.glCode.String(),
		}, now))
	return updated, nil
}

// Enable re-opens a disabled account (returns new copy).
func (a GLAccount) Enable(now time.Time) (GLAccount, error) {
	if !a.disabled {
		return GLAccount{}, invalid("GL account %s is not disabled", a.glCode)
	}
	updated := a
	updated.disabled = false
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = nil
	return updated, nil
}

// CheckPostable fails with ErrGLAccountNotPostable unless the account is an
// enabled DETAIL account.
func (a GLAccount) CheckPostable() error {
	if a.usage != valueobject.GLAccountUsageDetail {
		return fmt.Errorf("%w: %s is a %s account", ErrGLAccountNotPostable, a.glCode, a.usage)
	}
	if a.disabled {
		return fmt.Errorf("%w: %s is disabled", ErrGLAccountNotPostable, a.glCode)
	}
	return nil
}

// Accessors
func (a GLAccount) ID() uuid.UUID                          { return a.id }
func (a GLAccount) TenantID() uuid.UUID                    { return a.tenantID }
func (a GLAccount) ParentID() uuid.UUID                    { return a.parentID }
func (a GLAccount) Name() string                           { return a.name }
func (a GLAccount) GLCode() valueobject.GLCode             { return a.glCode }
func (a GLAccount) Type() valueobject.GLAccountType        { return a.accountType }
func (a GLAccount) Usage() valueobject.GLAccountUsage      { return a.usage }
func (a GLAccount) Disabled() bool                         { return a.disabled }
func (a GLAccount) Description() string                    { return a.description }
func (a GLAccount) Version() int                           { return a.version }
func (a GLAccount) CreatedAt() time.Time                   { return a.createdAt }
func (a GLAccount) UpdatedAt() time.Time                   { return a.updatedAt }
func (a GLAccount) DomainEvents() []events.DomainEvent     { return a.domainEvents }
