package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/internal/services"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *services.ExportService
	projectRepo   *repositories.ProjectRepository
}

func NewExportHandler(exportService *services.ExportService, projectRepo *repositories.ProjectRepository) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		projectRepo:   projectRepo,
	}
}

// ExportAuthors streams the project's resolved authorship as an xlsx file
func (h *ExportHandler) ExportAuthors(c *gin.Context) {
	project, err := h.projectRepo.GetByID(c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project"})
		return
	}

	f, err := h.exportService.ExportAuthors(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s-authors.xlsx", project.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write export"})
		return
	}
}
