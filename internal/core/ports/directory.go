package ports

// Directory is an in-memory keyed collection of profile records. It is a
// process-local cache, not a system of record: nothing survives a
// restart, and the service layer owns the remote-then-local write
// ordering on top of it.
type Directory[T any] interface {
	// Insert stores a record under id, replacing any existing entry.
	Insert(id string, record T)
	// Get returns the record for id and whether it exists.
	Get(id string) (T, bool)
	// List returns a snapshot copy of all records, order unspecified.
	List() []T
	// Update applies fn to the record for id and stores the result.
	// Returns the updated record, or false when id is absent (fn not called).
	Update(id string, fn func(*T)) (T, bool)
	// Len reports the number of stored records.
	Len() int
}
