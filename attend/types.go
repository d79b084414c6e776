package attend

import "time"

// MeetingRecord is an accepted meeting or invite link.
// Records are unique per (Platform, CanonicalURL).
type MeetingRecord struct {
	ID           uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Platform     string // Platform identifier (e.g., "meet", "whatsapp", "zoom")
	Kind         string // Link kind (code, lookup, path, invite, url)
	ExternalID   string // Meeting code, lookup token, path or invite token
	CanonicalURL string
	RawInput     string
	Source       string
}
