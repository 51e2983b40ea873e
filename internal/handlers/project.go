package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectRepo *repositories.ProjectRepository
	authorRepo  *repositories.AuthorRepository
	jobService  *services.JobService
}

func NewProjectHandler(
	projectRepo *repositories.ProjectRepository,
	authorRepo *repositories.AuthorRepository,
	jobService *services.JobService,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		authorRepo:  authorRepo,
		jobService:  jobService,
	}
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	RepoPath    string `json:"repo_path"`
	GitHubOwner string `json:"github_owner"`
	GitHubRepo  string `json:"github_repo"`
}

// CreateProject registers a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := models.NewProject(req.Name, req.RepoPath)
	project.GitHubOwner = req.GitHubOwner
	project.GitHubRepo = req.GitHubRepo

	if err := h.projectRepo.Create(project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns all projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns one project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	if err := h.projectRepo.Delete(project.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": project.ID})
}

// ListAuthors returns the project's scanned authors with canonical identities
func (h *ProjectHandler) ListAuthors(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	authors, err := h.authorRepo.GetByProjectID(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list authors"})
		return
	}

	c.JSON(http.StatusOK, authors)
}

// EnqueueScan queues a background author scan for the project
func (h *ProjectHandler) EnqueueScan(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	if !project.HasLocalRepository() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project has no local repository to scan"})
		return
	}

	job, err := h.jobService.EnqueueScan(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue scan job"})
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// ListJobs returns the project's jobs, newest first
func (h *ProjectHandler) ListJobs(c *gin.Context) {
	project, ok := h.findProject(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.GetJobsByProjectID(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// findProject loads the project named by the :id parameter, writing the
// error response itself when that fails.
func (h *ProjectHandler) findProject(c *gin.Context) (*models.Project, bool) {
	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
		return nil, false
	}

	project, err := h.projectRepo.GetByID(projectID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project"})
		return nil, false
	}

	return project, true
}
