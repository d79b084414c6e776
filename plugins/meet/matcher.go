package meet

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// Host is the canonical meeting host.
	Host = "meet.google.com"
	// RedirectHost is the short redirect domain that wraps meeting links.
	RedirectHost = "g.co"
	// RedirectPrefix is the path prefix used under RedirectHost.
	RedirectPrefix = "/meet/"

	lookupPrefix = "/lookup/"
)

var (
	codePattern     = regexp.MustCompile(`(?i)^[a-z]{3}-[a-z]{4}-[a-z]{3}$`)
	codePathPattern = regexp.MustCompile(`(?i)^/([a-z]{3}-[a-z]{4}-[a-z]{3})$`)
	lookupPattern   = regexp.MustCompile(`^/lookup/([^/]+)$`)
	schemePattern   = regexp.MustCompile(`(?i)^https?://`)
)

// Reference is a resolved meeting reference: exactly one of Code, Lookup
// or Path.
type Reference interface {
	// CanonicalURL returns the absolute https URL of the reference.
	CanonicalURL() string
	reference()
}

// Code is a meeting code reference such as abc-defg-hij.
type Code struct {
	Code string
	URL  string
}

// Lookup is a /lookup/<token> reference. The token is opaque.
type Lookup struct {
	Token string
	URL   string
}

// Path is any other recognized-host path.
type Path struct {
	Path string
	URL  string
}

func (c Code) CanonicalURL() string   { return c.URL }
func (l Lookup) CanonicalURL() string { return l.URL }
func (p Path) CanonicalURL() string   { return p.URL }

func (Code) reference()   {}
func (Lookup) reference() {}
func (Path) reference()   {}

// IsCode reports whether s is a meeting code in any letter case.
func IsCode(s string) bool {
	return codePattern.MatchString(s)
}

// Resolve parses user input into a meeting reference.
// Accepted shapes:
//   - abc-defg-hij (any case)
//   - https://meet.google.com/abc-defg-hij
//   - meet.google.com/abc-defg-hij (scheme is completed)
//   - https://g.co/meet/abc-defg-hij
//   - https://meet.google.com/lookup/<token>
//
// Returns nil and false when the input is empty or matches none of them.
func Resolve(input string) (Reference, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}

	if codePattern.MatchString(trimmed) {
		return newCode(trimmed), true
	}

	raw := completeScheme(trimmed)
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == RedirectHost && strings.HasPrefix(parsed.EscapedPath(), RedirectPrefix) {
		return resolveRedirect(parsed)
	}
	if host != Host {
		return nil, false
	}
	return resolvePrimary(parsed)
}

// resolveRedirect handles g.co/meet/... links. A non-code remainder stays
// on the redirect host instead of moving to the canonical host, with the
// scheme and host normalized like every other canonical URL.
func resolveRedirect(parsed *url.URL) (Reference, bool) {
	rest := strings.TrimPrefix(parsed.EscapedPath(), RedirectPrefix)
	rest = strings.TrimRight(rest, "/")
	if rest == "" {
		return nil, false
	}
	if codePattern.MatchString(rest) {
		return newCode(rest), true
	}
	path := RedirectPrefix + rest
	return Path{Path: path, URL: "https://" + RedirectHost + path}, true
}

func resolvePrimary(parsed *url.URL) (Reference, bool) {
	path := strings.TrimRight(parsed.EscapedPath(), "/")
	if path == "" {
		return nil, false
	}

	if match := lookupPattern.FindStringSubmatch(path); len(match) == 2 {
		token := match[1]
		return Lookup{Token: token, URL: "https://" + Host + lookupPrefix + token}, true
	}
	if match := codePathPattern.FindStringSubmatch(path); len(match) == 2 {
		return newCode(match[1]), true
	}
	return Path{Path: path, URL: "https://" + Host + path}, true
}

func newCode(code string) Code {
	code = strings.ToLower(code)
	return Code{Code: code, URL: "https://" + Host + "/" + code}
}

// completeScheme prepends https:// to schemeless input on a known host.
// Anything else is returned unchanged and left for url.Parse to reject.
func completeScheme(s string) string {
	if schemePattern.MatchString(s) {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, Host) || strings.HasPrefix(lower, RedirectHost+"/") {
		return "https://" + s
	}
	return s
}
