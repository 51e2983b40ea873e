package mailmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveSignature(t *testing.T) {
	m := New()
	assert.NoError(t, m.AddEntry(strPtr("Jane Doe"), strPtr("jane@new.com"), nil, "jane@old.com"))

	when := time.Date(2024, 3, 14, 9, 26, 53, 0, time.FixedZone("", 2*3600))
	resolved, err := m.ResolveSignature(Signature{
		Name:  "J. D.",
		Email: "jane@old.com",
		When:  when,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", resolved.Name)
	assert.Equal(t, "jane@new.com", resolved.Email)
	assert.True(t, resolved.When.Equal(when))
	assert.Equal(t, when.Format(time.RFC3339), resolved.When.Format(time.RFC3339))
}

func TestResolveSignatureNoMatchKeepsIdentity(t *testing.T) {
	m := New()

	sig := Signature{Name: "Jane", Email: "jane@example.com", When: time.Now()}
	resolved, err := m.ResolveSignature(sig)

	assert.NoError(t, err)
	assert.Equal(t, sig.Name, resolved.Name)
	assert.Equal(t, sig.Email, resolved.Email)
}

func TestResolveSignatureRejectsForbiddenCharacters(t *testing.T) {
	testCases := []struct {
		name     string
		realName string
	}{
		{name: "Angle bracket open", realName: "Jane <Doe"},
		{name: "Angle bracket close", realName: "Jane> Doe"},
		{name: "Newline", realName: "Jane\nDoe"},
		{name: "NUL byte", realName: "Jane\x00Doe"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			assert.NoError(t, m.AddEntry(strPtr(tc.realName), nil, nil, "jane@old.com"))

			_, err := m.ResolveSignature(Signature{Name: "J", Email: "jane@old.com", When: time.Now()})

			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}
