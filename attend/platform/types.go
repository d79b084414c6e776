package platform

// Kind identifies the shape of a resolved link.
type Kind string

const (
	KindCode   Kind = "code"
	KindLookup Kind = "lookup"
	KindPath   Kind = "path"
	KindInvite Kind = "invite"
	KindURL    Kind = "url"
)

func (k Kind) String() string {
	return string(k)
}

// Link is the platform-neutral, canonical form of a meeting or invite
// reference. Two links refer to the same meeting when Platform and URL
// are equal.
type Link struct {
	Platform string
	Kind     Kind
	// ID is the meeting code, lookup token, path or invite token.
	// Empty for KindURL.
	ID  string
	URL string
}

// Key returns the deduplication key of the link.
func (l Link) Key() string {
	return l.Platform + " " + l.URL
}

