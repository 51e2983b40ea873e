// Package mailmap maps recorded commit identities to canonical names and
// emails using the mailmap file format. A Mailmap is built from one or more
// sources, then queried with Resolve; rules match on the recorded email
// (case-insensitive) with optional name qualification.
//
// A Mailmap is owned by a single caller. Sharing one across goroutines is
// safe only while no AddEntry calls race with lookups.
package mailmap

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mailmap holds mailmap entries indexed by lowercased replace email.
// Entries keep insertion order; re-adding a rule with the same
// (replace name, replace email) pair overwrites it in place, so later
// loads deterministically override earlier ones without growing the map.
type Mailmap struct {
	entries []*Entry
	index   map[string][]*Entry
}

// New creates an empty Mailmap.
func New() *Mailmap {
	return &Mailmap{
		index: make(map[string][]*Entry),
	}
}

// FromBuffer creates a Mailmap from the contents of a single mailmap file.
// Malformed lines are skipped; only a buffer that is not text at all
// (invalid UTF-8 or interior NUL bytes) is rejected.
func FromBuffer(buffer []byte) (*Mailmap, error) {
	if !utf8.Valid(buffer) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrParse)
	}
	if strings.IndexByte(string(buffer), 0) >= 0 {
		return nil, fmt.Errorf("%w: NUL byte in buffer", ErrParse)
	}

	m := New()
	for _, entry := range parseBuffer(buffer) {
		m.add(entry)
	}
	return m, nil
}

// AddEntry adds a single rule. Nil realName/realEmail leave the matched
// field unchanged; a nil replaceName matches any recorded name. An existing
// rule with the same (replaceName, replaceEmail) pair is replaced in place.
func (m *Mailmap) AddEntry(realName, realEmail, replaceName *string, replaceEmail string) error {
	if replaceEmail == "" {
		return fmt.Errorf("%w: replace email is required", ErrInvalidArgument)
	}
	if strings.IndexByte(replaceEmail, 0) >= 0 {
		return fmt.Errorf("%w: replace email contains NUL byte", ErrInvalidArgument)
	}

	m.add(&Entry{
		RealName:     realName,
		RealEmail:    realEmail,
		ReplaceName:  replaceName,
		ReplaceEmail: replaceEmail,
	})
	return nil
}

// AddAll adds every entry of the buffer on top of the existing rules.
func (m *Mailmap) AddAll(buffer []byte) {
	for _, entry := range parseBuffer(buffer) {
		m.add(entry)
	}
}

func (m *Mailmap) add(entry *Entry) {
	if m.index == nil {
		m.index = make(map[string][]*Entry)
	}

	key := strings.ToLower(entry.ReplaceEmail)
	for _, existing := range m.index[key] {
		if existing.sameKey(entry) {
			*existing = *entry
			return
		}
	}

	m.entries = append(m.entries, entry)
	m.index[key] = append(m.index[key], entry)
}

// Len returns the number of stored rules.
func (m *Mailmap) Len() int {
	return len(m.entries)
}

// Entries returns the stored rules in insertion order.
func (m *Mailmap) Entries() []*Entry {
	return m.entries
}

// Resolve maps a recorded (name, email) pair to its canonical form.
// A name-qualified rule beats a wildcard one; within a tier the most
// recently added rule wins. A matched rule substitutes only the fields it
// specifies. With no matching rule the inputs are returned verbatim.
func (m *Mailmap) Resolve(name, email string) (string, string) {
	var matched, wildcard *Entry
	for _, entry := range m.index[strings.ToLower(email)] {
		if entry.ReplaceName == nil {
			wildcard = entry
		} else if *entry.ReplaceName == name {
			matched = entry
		}
	}

	entry := matched
	if entry == nil {
		entry = wildcard
	}
	if entry == nil {
		return name, email
	}

	if entry.RealName != nil {
		name = *entry.RealName
	}
	if entry.RealEmail != nil {
		email = *entry.RealEmail
	}
	return name, email
}
