package feed

// Stream is one row from the streams feed. Archived entries carry no status.
type Stream struct {
	Source   string `json:"source"`
	Link     string `json:"link"`
	State    string `json:"state"`
	City     string `json:"city"`
	Platform string `json:"platform"`
	Status   string `json:"status,omitempty"`
}

// Snapshot pairs the currently live sources with the day's archive. A fresh
// snapshot is fetched every tick and never mutated afterwards.
type Snapshot struct {
	Recent   []Stream
	Archived []Stream
}

// Equal reports whether two snapshots carry exactly the same records in the
// same order. This is the test the engine uses to decide whether the thread
// body needs an edit, so it is deliberately literal: reordered or
// reformatted feed output counts as a change.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Recent) != len(other.Recent) || len(s.Archived) != len(other.Archived) {
		return false
	}
	for i := range s.Recent {
		if s.Recent[i] != other.Recent[i] {
			return false
		}
	}
	for i := range s.Archived {
		if s.Archived[i] != other.Archived[i] {
			return false
		}
	}
	return true
}
