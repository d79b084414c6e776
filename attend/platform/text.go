package platform

import "strings"

// Candidates splits free text into tokens that could be links or codes.
// Surrounding quotes, brackets and sentence punctuation are removed, so
// "Join (https://meet.google.com/abc-defg-hij)." yields the bare URL.
func Candidates(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		token := cleanToken(field)
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}

func cleanToken(token string) string {
	token = strings.TrimLeft(token, "([{<\"'")
	// Trailing punctuation may stack, e.g. "...hij)." so trim until stable.
	for {
		trimmed := strings.TrimRight(token, ".,!?;:)]}>\"'")
		if trimmed == token {
			break
		}
		token = trimmed
	}
	return token
}
