package mailmap

import (
	"fmt"
	"strings"
	"time"
)

// Signature is an authorship record: an identity plus the moment it was
// recorded.
type Signature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	When  time.Time `json:"when"`
}

// ResolveSignature maps a signature's identity to its canonical form,
// keeping the timestamp. The returned signature is fully owned by the
// caller and independent of the Mailmap. It fails only when a resolved
// string cannot appear inside a well-formed signature.
func (m *Mailmap) ResolveSignature(sig Signature) (Signature, error) {
	name, email := m.Resolve(sig.Name, sig.Email)

	if err := checkSignatureField("name", name); err != nil {
		return Signature{}, err
	}
	if err := checkSignatureField("email", email); err != nil {
		return Signature{}, err
	}

	return Signature{
		Name:  strings.Clone(name),
		Email: strings.Clone(email),
		When:  sig.When,
	}, nil
}

// checkSignatureField rejects characters that would break the
// "name <email> timestamp" wire form.
func checkSignatureField(field, value string) error {
	if strings.ContainsAny(value, "<>\n") || strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("%w: %s %q contains a forbidden character", ErrInvalidSignature, field, value)
	}
	return nil
}
