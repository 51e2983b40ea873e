package services

import (
	"fmt"

	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a project's resolved authorship as an xlsx workbook.
type ExportService struct {
	authorRepo *repositories.AuthorRepository
}

// NewExportService creates a new export service
func NewExportService(authorRepo *repositories.AuthorRepository) *ExportService {
	return &ExportService{
		authorRepo: authorRepo,
	}
}

// ExportAuthors builds the workbook for a project's stored authors
func (s *ExportService) ExportAuthors(project *models.Project) (*excelize.File, error) {
	authors, err := s.authorRepo.GetByProjectID(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	return BuildAuthorsWorkbook(authors)
}

// BuildAuthorsWorkbook renders authors into an "Authors" sheet, recorded
// identity next to its canonical form.
func BuildAuthorsWorkbook(authors []*models.Author) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Authors"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Recorded Name", "Recorded Email", "Canonical Name", "Canonical Email", "Commits", "Last Commit", "Resolved"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, author := range authors {
		lastCommit := ""
		if author.LastCommitAt != nil {
			lastCommit = author.LastCommitAt.Format("2006-01-02 15:04:05")
		}

		values := []interface{}{
			author.Name, author.Email,
			author.CanonicalName, author.CanonicalEmail,
			author.CommitCount, lastCommit, author.IsResolved(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
