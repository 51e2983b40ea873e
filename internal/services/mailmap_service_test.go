package services

import (
	"testing"

	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/pkg/mailmap"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestApplyRulesLayersOverRepositorySources(t *testing.T) {
	// The repository's .mailmap says one thing, a stored rule overrides it.
	base, err := mailmap.FromBuffer([]byte("From File <file@x.com> <old@x.com>\n"))
	assert.NoError(t, err)

	rules := []*models.MailmapRule{
		models.NewMailmapRule("project-1", strPtr("From Rule"), strPtr("rule@x.com"), nil, "old@x.com"),
	}

	m, err := ApplyRules(base, rules)
	assert.NoError(t, err)

	name, email := m.Resolve("anyone", "old@x.com")
	assert.Equal(t, "From Rule", name)
	assert.Equal(t, "rule@x.com", email)
}

func TestApplyRulesKeepsRuleOrder(t *testing.T) {
	rules := []*models.MailmapRule{
		models.NewMailmapRule("project-1", strPtr("First"), nil, nil, "x@y.com"),
		models.NewMailmapRule("project-1", strPtr("Second"), nil, nil, "x@y.com"),
	}

	m, err := ApplyRules(mailmap.New(), rules)
	assert.NoError(t, err)

	// Same key, so the second rule replaced the first.
	assert.Equal(t, 1, m.Len())
	name, _ := m.Resolve("anyone", "x@y.com")
	assert.Equal(t, "Second", name)
}

func TestApplyRulesRejectsEmptyKey(t *testing.T) {
	rules := []*models.MailmapRule{
		models.NewMailmapRule("project-1", strPtr("Broken"), nil, nil, ""),
	}

	_, err := ApplyRules(mailmap.New(), rules)

	assert.ErrorIs(t, err, mailmap.ErrInvalidArgument)
}
