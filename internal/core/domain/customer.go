package domain

// Customer is the owner of one or more accounts. Authentication happens
// upstream; the ledger only needs the display name for account naming and
// the PIN hash for movement confirmation.
type Customer struct {
	CustomerID int64
	FullName   string
	PinHash    string
	AuditFields
}

// PossessiveName returns the customer's name in possessive form, used when
// composing default account names. Names already ending in "s" take a bare
// apostrophe.
func (c Customer) PossessiveName() string {
	if len(c.FullName) > 0 && (c.FullName[len(c.FullName)-1] == 's' || c.FullName[len(c.FullName)-1] == 'S') {
		return c.FullName + "'"
	}
	return c.FullName + "'s"
}
