package model

// Counterpart is the identity anchor for transactions: a client or a
// supplier, depending on which table it came from. Counterparts are created
// on demand when a transaction names one that does not exist yet.
type Counterpart struct {
	ID          int64           `db:"id" json:"id"`
	Type        TransactionType `db:"-" json:"type"`
	Name        string          `db:"name" json:"name"`
	ContactInfo string          `db:"contact_info" json:"contactInfo,omitempty"`
	Address     string          `db:"address" json:"address,omitempty"`
}

// Key implements cache.Entry.
func (c Counterpart) Key() int64 { return c.ID }

// CounterpartTable returns the store table counterparts of the given
// transaction type live in.
func CounterpartTable(t TransactionType) string {
	if t == TransactionTypeSupplier {
		return "suppliers"
	}
	return "clients"
}
