package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for counted, non-fatal diagnostics.
	SevWarning Severity = iota
	// SevError is for fatal diagnostics; the first one ends the run.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
