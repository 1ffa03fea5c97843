package internal

// QueryType defines the possible queries for the state machine.
type QueryType uint8

const (
	QueryTLookup QueryType = iota // Retrieve the phone number(s) of a name.
	QueryTCount                   // Number of entries in the phonebook.
)

func (q QueryType) String() string {
	switch q {
	case QueryTLookup:
		return "Lookup"
	case QueryTCount:
		return "Count"
	default:
		return "Unknown"
	}
}

// Query defines the structure for lookup requests (read-only) sent via SyncRead or StaleRead
type Query struct {
	Type QueryType // The type of Query to perform.
	Key  string    // The key for the Query (empty for QueryTCount).
}

// QueryResult is the result of a QueryTLookup operation.
// QueryTCount returns a plain int.
type QueryResult struct {
	Ok    bool
	Value string
}
