package model

// FAQEntry maps a topic keyword to its canned answer.
type FAQEntry struct {
	Topic  string `json:"topic"`
	Answer string `json:"answer"`
}

type OrderRecord struct {
	Number   string `json:"number"`
	Status   string `json:"status"`
	Tracking string `json:"tracking,omitempty"`
	ETA      string `json:"eta"`
}

// HasTracking reports whether a tracking number has been issued.
func (o OrderRecord) HasTracking() bool {
	return o.Tracking != ""
}

// ActionRecord is what the resolver emits when it takes an action.
type ActionRecord struct {
	Kind    string `json:"kind"`
	Details string `json:"details"`
}
