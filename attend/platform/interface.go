package platform

// Resolver defines the interface that every link platform must satisfy.
// A resolver turns raw user input (a pasted URL, short code or token) into
// a canonical Link, or reports that the input is not recognized.
//
// Resolvers are pure: they perform no I/O and hold no mutable state, so
// implementations must be safe for concurrent use by multiple goroutines.
type Resolver interface {
	// Name returns the platform identifier (e.g., "meet", "whatsapp", "zoom").
	// This name should be lowercase and URL-safe.
	Name() string

	// Resolve attempts to canonicalize input for this platform.
	// Returns the link and true if the input matches the platform's grammar,
	// or a zero Link and false if it does not.
	Resolve(input string) (Link, bool)
}

// Manager provides a registry for multiple platform resolvers.
type Manager interface {
	// Register adds a resolver to the manager.
	// If a resolver with the same name already exists, it will be replaced.
	Register(resolver Resolver)

	// Get retrieves a resolver by name or alias.
	// Returns nil if no resolver with that name is registered.
	Get(name string) Resolver

	// List returns all registered platform names in registration order.
	List() []string

	// Resolve canonicalizes input with the named platform.
	// Returns a *LinkError wrapping ErrEmptyInput, ErrUnrecognized or
	// ErrUnknownPlatform on failure.
	Resolve(platformName, input string) (Link, error)

	// Detect tries every detectable platform in registration order and
	// returns the first link that matches.
	Detect(input string) (Link, error)

	// DetectText extracts all recognizable links from free text.
	DetectText(text string) []Link

	// ResolveAlias resolves a platform alias to its canonical platform name.
	ResolveAlias(alias string) (platformName string, matched bool)

	// Meta returns metadata for a platform name.
	Meta(name string) (Meta, bool)

	// ListMeta returns metadata for all registered platforms.
	ListMeta() []Meta
}
