package whatsapp

import (
	"net/url"
	"regexp"
	"strings"
)

// Host is the group invite host.
const Host = "chat.whatsapp.com"

var (
	// Tokens vary in the wild, so only a lower bound on length is enforced.
	tokenPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
)

// IsToken reports whether s is shaped like an invite token.
func IsToken(s string) bool {
	return tokenPattern.MatchString(s)
}

// Resolve normalizes a group invite link to https://chat.whatsapp.com/<token>.
// Path segments after the token, the query and the fragment are dropped.
// Returns an empty string and false if the input is not an invite link.
func Resolve(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	raw := trimmed
	if !schemePattern.MatchString(raw) && strings.HasPrefix(strings.ToLower(raw), Host) {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	if strings.ToLower(parsed.Hostname()) != Host {
		return "", false
	}

	token := firstSegment(parsed.EscapedPath())
	if token == "" || !tokenPattern.MatchString(token) {
		return "", false
	}
	return "https://" + Host + "/" + token, true
}

func firstSegment(path string) string {
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			return segment
		}
	}
	return ""
}
