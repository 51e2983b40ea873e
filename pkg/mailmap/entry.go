package mailmap

import "strings"

// Entry is a single mailmap rule. ReplaceEmail is the match key and is
// compared case-insensitively. The optional fields carry distinct absence
// semantics: a nil ReplaceName matches any recorded name, while a nil
// RealName or RealEmail leaves that field of a matched identity unchanged.
type Entry struct {
	RealName     *string
	RealEmail    *string
	ReplaceName  *string
	ReplaceEmail string
}

// sameKey reports whether two entries match the same (replace name,
// replace email) pair, the identity used for in-place replacement.
func (e *Entry) sameKey(other *Entry) bool {
	if !strings.EqualFold(e.ReplaceEmail, other.ReplaceEmail) {
		return false
	}
	if (e.ReplaceName == nil) != (other.ReplaceName == nil) {
		return false
	}
	return e.ReplaceName == nil || *e.ReplaceName == *other.ReplaceName
}

// parseBuffer converts raw mailmap file text into entries. Lines that cannot
// be parsed are skipped, never reported.
func parseBuffer(buffer []byte) []*Entry {
	var entries []*Entry
	for _, line := range strings.Split(string(buffer), "\n") {
		if entry := parseLine(line); entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseLine parses one mailmap line of the form
//
//	[<real-name>] <real-email> [[<replace-name>] <replace-email>]
//
// and returns nil for blank lines, comments, and malformed lines.
func parseLine(line string) *Entry {
	line = strings.TrimRight(line, "\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	nameA, emailA, rest, ok := splitNameEmail(trimmed)
	if !ok {
		return nil
	}

	entry := &Entry{}
	if rest == "" {
		if emailA == "" {
			return nil
		}
		// Single-email form: match on the email, rewrite the name only.
		entry.RealName = nameA
		entry.ReplaceEmail = emailA
		return entry
	}

	nameB, emailB, rest, ok := splitNameEmail(rest)
	if !ok || emailB == "" || strings.TrimSpace(rest) != "" {
		return nil
	}

	entry.RealName = nameA
	if emailA != "" {
		entry.RealEmail = &emailA
	}
	entry.ReplaceName = nameB
	entry.ReplaceEmail = emailB
	return entry
}

// splitNameEmail consumes one "[name] <email>" group from the front of s.
// The name is trimmed and nil when empty; the remainder after '>' is
// returned for the caller to continue parsing.
func splitNameEmail(s string) (name *string, email string, rest string, ok bool) {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return nil, "", "", false
	}
	end := strings.IndexByte(s[open:], '>')
	if end < 0 {
		return nil, "", "", false
	}
	end += open

	if n := strings.TrimSpace(s[:open]); n != "" {
		name = &n
	}
	email = strings.TrimSpace(s[open+1 : end])
	return name, email, s[end+1:], true
}
