package valueobject

import "fmt"

// EntryType is the side of a journal entry leg.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

func ParseEntryType(s string) (EntryType, error) {
	switch e := EntryType(s); e {
	case EntryTypeDebit, EntryTypeCredit:
		return e, nil
	}
	return "", fmt.Errorf("invalid entry type %q", s)
}

// Opposite returns the compensating side.
func (e EntryType) Opposite() EntryType {
	if e == EntryTypeDebit {
		return EntryTypeCredit
	}
	return EntryTypeDebit
}

func (e EntryType) String() string { return string(e) }
