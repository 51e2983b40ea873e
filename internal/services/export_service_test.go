package services

import (
	"testing"
	"time"

	"github.com/canmap/canmap/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildAuthorsWorkbook(t *testing.T) {
	lastCommit := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	resolved := models.NewAuthor("project-1", "J. D.", "jane@old.com")
	resolved.CanonicalName = "Jane Doe"
	resolved.CanonicalEmail = "jane@new.com"
	resolved.CommitCount = 7
	resolved.LastCommitAt = &lastCommit

	unresolved := models.NewAuthor("project-1", "Someone", "other@example.com")
	unresolved.CommitCount = 2

	f, err := BuildAuthorsWorkbook([]*models.Author{resolved, unresolved})
	assert.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Authors", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Recorded Name", header)

	name, err := f.GetCellValue("Authors", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "J. D.", name)

	canonicalEmail, err := f.GetCellValue("Authors", "D2")
	assert.NoError(t, err)
	assert.Equal(t, "jane@new.com", canonicalEmail)

	isResolved, err := f.GetCellValue("Authors", "G2")
	assert.NoError(t, err)
	assert.Equal(t, "TRUE", isResolved)

	lastCommitCell, err := f.GetCellValue("Authors", "F3")
	assert.NoError(t, err)
	assert.Equal(t, "", lastCommitCell)
}

func TestBuildAuthorsWorkbookEmpty(t *testing.T) {
	f, err := BuildAuthorsWorkbook(nil)
	assert.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Authors"}, sheets)
}
