package metrics

// Sink records registry lifecycle events for observability purposes.
// Implementations must be safe for concurrent use.
type Sink interface {
	// RecordResolution is called once per successful resolution pass with the
	// number of entries in the resulting table.
	RecordResolution(entries int)
	// RecordCacheLookup is called for each resolution-cache lookup.
	RecordCacheLookup(hit bool)
	// RecordConstruction is called after each client construction attempt.
	RecordConstruction(client string, err error)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordResolution(int)             {}
func (NopSink) RecordCacheLookup(bool)           {}
func (NopSink) RecordConstruction(string, error) {}
