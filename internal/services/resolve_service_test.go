package services

import (
	"testing"
	"time"

	"github.com/canmap/canmap/internal/gitrepo"
	"github.com/canmap/canmap/pkg/mailmap"
	"github.com/stretchr/testify/assert"
)

func TestResolveAuthor(t *testing.T) {
	m := mailmap.New()
	assert.NoError(t, m.AddEntry(strPtr("Jane Doe"), strPtr("jane@new.com"), nil, "jane@old.com"))

	lastCommit := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name              string
		identity          gitrepo.Author
		expectedCanonName string
		expectedCanonMail string
		expectedResolved  bool
	}{
		{
			name: "Matched identity",
			identity: gitrepo.Author{
				Name:       "J. D.",
				Email:      "jane@old.com",
				Commits:    7,
				LastCommit: lastCommit,
			},
			expectedCanonName: "Jane Doe",
			expectedCanonMail: "jane@new.com",
			expectedResolved:  true,
		},
		{
			name: "Unmatched identity",
			identity: gitrepo.Author{
				Name:    "Someone Else",
				Email:   "other@example.com",
				Commits: 2,
			},
			expectedCanonName: "Someone Else",
			expectedCanonMail: "other@example.com",
			expectedResolved:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			author := ResolveAuthor(m, "project-1", tc.identity)

			assert.NotEmpty(t, author.ID)
			assert.Equal(t, "project-1", author.ProjectID)
			assert.Equal(t, tc.identity.Name, author.Name)
			assert.Equal(t, tc.identity.Email, author.Email)
			assert.Equal(t, tc.expectedCanonName, author.CanonicalName)
			assert.Equal(t, tc.expectedCanonMail, author.CanonicalEmail)
			assert.Equal(t, tc.identity.Commits, author.CommitCount)
			assert.Equal(t, tc.expectedResolved, author.IsResolved())

			if tc.identity.LastCommit.IsZero() {
				assert.Nil(t, author.LastCommitAt)
			} else {
				assert.NotNil(t, author.LastCommitAt)
				assert.True(t, author.LastCommitAt.Equal(tc.identity.LastCommit))
			}
		})
	}
}
