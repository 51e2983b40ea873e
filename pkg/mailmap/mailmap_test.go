package mailmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNoMatchReturnsInput(t *testing.T) {
	m := New()

	name, email := m.Resolve("Jane Doe", "jane@example.com")

	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "jane@example.com", email)
}

func TestResolveIsIdempotent(t *testing.T) {
	m := New()
	err := m.AddEntry(strPtr("Jane Doe"), strPtr("jane@new.com"), nil, "jane@old.com")
	assert.NoError(t, err)

	name, email := m.Resolve("J. D.", "jane@old.com")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "jane@new.com", email)

	// The canonical pair has no rule keyed on it, so it is a fixed point.
	name2, email2 := m.Resolve(name, email)
	assert.Equal(t, name, name2)
	assert.Equal(t, email, email2)
}

func TestResolveNameWildcard(t *testing.T) {
	m := New()
	err := m.AddEntry(strPtr("Jane Doe"), nil, nil, "jane@old.com")
	assert.NoError(t, err)

	name, email := m.Resolve("J. D.", "jane@old.com")

	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "jane@old.com", email)
}

func TestResolveEmailIsCaseInsensitive(t *testing.T) {
	m, err := FromBuffer([]byte("Real Name <real@x.com> <old@x.com>\n"))
	assert.NoError(t, err)

	name, email := m.Resolve("whatever", "OLD@X.COM")

	assert.Equal(t, "Real Name", name)
	assert.Equal(t, "real@x.com", email)
}

func TestResolveNameQualifiedBeatsWildcard(t *testing.T) {
	m := New()
	assert.NoError(t, m.AddEntry(strPtr("A"), nil, nil, "x@y.com"))
	assert.NoError(t, m.AddEntry(strPtr("B"), nil, strPtr("bob"), "x@y.com"))

	name, _ := m.Resolve("bob", "x@y.com")
	assert.Equal(t, "B", name)

	name, _ = m.Resolve("anyone-else", "x@y.com")
	assert.Equal(t, "A", name)

	// Replace name matching is case-sensitive, unlike the email key.
	name, _ = m.Resolve("Bob", "x@y.com")
	assert.Equal(t, "A", name)
}

func TestResolveLatestEntryWinsWithinTier(t *testing.T) {
	m := New()
	assert.NoError(t, m.AddEntry(strPtr("First"), nil, nil, "x@y.com"))
	assert.NoError(t, m.AddEntry(strPtr("Second"), nil, nil, "x@y.com"))

	// Two wildcards for one email share a key, so the second load took the
	// first one's slot and a lookup sees the latest rule.
	assert.Equal(t, 1, m.Len())

	name, _ := m.Resolve("anyone", "x@y.com")
	assert.Equal(t, "Second", name)
}

func TestAddEntryReplacesInPlace(t *testing.T) {
	m := New()
	assert.NoError(t, m.AddEntry(strPtr("Old Name"), nil, strPtr("bob"), "x@y.com"))
	assert.NoError(t, m.AddEntry(strPtr("New Name"), nil, strPtr("bob"), "x@y.com"))

	assert.Equal(t, 1, m.Len())

	name, _ := m.Resolve("bob", "x@y.com")
	assert.Equal(t, "New Name", name)
}

func TestAddEntryReplacementKeyIsEmailCaseInsensitive(t *testing.T) {
	m := New()
	assert.NoError(t, m.AddEntry(strPtr("Old"), nil, nil, "x@y.com"))
	assert.NoError(t, m.AddEntry(strPtr("New"), nil, nil, "X@Y.COM"))

	assert.Equal(t, 1, m.Len())

	name, _ := m.Resolve("anyone", "x@y.com")
	assert.Equal(t, "New", name)
}

func TestAddEntryRejectsEmptyReplaceEmail(t *testing.T) {
	m := New()

	err := m.AddEntry(strPtr("Jane"), nil, nil, "")

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, m.Len())
}

func TestAddEntryRejectsNULInReplaceEmail(t *testing.T) {
	m := New()

	err := m.AddEntry(nil, nil, nil, "x\x00y@example.com")

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolveSubstitutesOnlySpecifiedFields(t *testing.T) {
	testCases := []struct {
		name          string
		realName      *string
		realEmail     *string
		expectedName  string
		expectedEmail string
	}{
		{
			name:          "Name only",
			realName:      strPtr("Canonical"),
			expectedName:  "Canonical",
			expectedEmail: "old@example.com",
		},
		{
			name:          "Email only",
			realEmail:     strPtr("new@example.com"),
			expectedName:  "Recorded",
			expectedEmail: "new@example.com",
		},
		{
			name:          "Both fields",
			realName:      strPtr("Canonical"),
			realEmail:     strPtr("new@example.com"),
			expectedName:  "Canonical",
			expectedEmail: "new@example.com",
		},
		{
			name:          "Neither field",
			expectedName:  "Recorded",
			expectedEmail: "old@example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			assert.NoError(t, m.AddEntry(tc.realName, tc.realEmail, nil, "old@example.com"))

			name, email := m.Resolve("Recorded", "old@example.com")

			assert.Equal(t, tc.expectedName, name)
			assert.Equal(t, tc.expectedEmail, email)
		})
	}
}

func TestFromBufferRejectsNonText(t *testing.T) {
	_, err := FromBuffer([]byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrParse)

	_, err = FromBuffer([]byte("A <a@example.com>\x00\n"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestFromBufferSkipsMalformedLines(t *testing.T) {
	m, err := FromBuffer([]byte("Jane Doe <jane@example.com>\nbroken <no-close\n"))

	assert.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestSingleEmailRuleDoesNotRewriteEmailCase(t *testing.T) {
	m, err := FromBuffer([]byte("Proper Name <Commit@Example.com>\n"))
	assert.NoError(t, err)

	name, email := m.Resolve("whoever", "commit@example.com")

	assert.Equal(t, "Proper Name", name)
	assert.Equal(t, "commit@example.com", email)
}

func TestAddAllLayersOverFromBuffer(t *testing.T) {
	m, err := FromBuffer([]byte("Working Tree <wt@example.com> <old@example.com>\n"))
	assert.NoError(t, err)

	m.AddAll([]byte("Config File <cfg@example.com> <old@example.com>\n"))

	// Same wildcard key, so the later source replaced the earlier rule.
	assert.Equal(t, 1, m.Len())

	name, email := m.Resolve("anyone", "old@example.com")
	assert.Equal(t, "Config File", name)
	assert.Equal(t, "cfg@example.com", email)
}
