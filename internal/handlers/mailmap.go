package handlers

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/internal/services"
	"github.com/canmap/canmap/pkg/mailmap"
	"github.com/gin-gonic/gin"
)

type MailmapHandler struct {
	mailmapService *services.MailmapService
	resolveService *services.ResolveService
	githubService  *services.GitHubMailmapService
	projectRepo    *repositories.ProjectRepository
}

func NewMailmapHandler(
	mailmapService *services.MailmapService,
	resolveService *services.ResolveService,
	githubService *services.GitHubMailmapService,
	projectRepo *repositories.ProjectRepository,
) *MailmapHandler {
	return &MailmapHandler{
		mailmapService: mailmapService,
		resolveService: resolveService,
		githubService:  githubService,
		projectRepo:    projectRepo,
	}
}

type createRuleRequest struct {
	RealName     *string `json:"real_name"`
	RealEmail    *string `json:"real_email"`
	ReplaceName  *string `json:"replace_name"`
	ReplaceEmail string  `json:"replace_email" binding:"required"`
}

// CreateRule stores a new mailmap rule for a project
func (h *MailmapHandler) CreateRule(c *gin.Context) {
	projectID := c.Param("id")

	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.mailmapService.CreateRule(projectID, req.RealName, req.RealEmail, req.ReplaceName, req.ReplaceEmail)
	if errors.Is(err, mailmap.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// ListRules returns a project's rules in insertion order
func (h *MailmapHandler) ListRules(c *gin.Context) {
	rules, err := h.mailmapService.GetRulesByProjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rules"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// DeleteRule deletes one rule by ID
func (h *MailmapHandler) DeleteRule(c *gin.Context) {
	ruleID := c.Param("ruleId")
	if ruleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rule ID is required"})
		return
	}

	if err := h.mailmapService.DeleteRule(ruleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": ruleID})
}

// ImportMailmap parses a raw mailmap file from the request body and stores
// its entries as project rules
func (h *MailmapHandler) ImportMailmap(c *gin.Context) {
	buffer, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	imported, err := h.mailmapService.ImportBuffer(c.Param("id"), buffer)
	if errors.Is(err, mailmap.ErrParse) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import mailmap"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// ImportFromGitHub fetches the project's .mailmap from GitHub and imports it
func (h *MailmapHandler) ImportFromGitHub(c *gin.Context) {
	project, err := h.projectRepo.GetByID(c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project"})
		return
	}

	if !project.HasGitHubRepository() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project has no GitHub repository configured"})
		return
	}

	imported, err := h.githubService.ImportForProject(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// Resolve maps a recorded identity to its canonical form
func (h *MailmapHandler) Resolve(c *gin.Context) {
	name := c.Query("name")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	resolvedName, resolvedEmail, err := h.resolveService.Resolve(c.Param("id"), name, email)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":  resolvedName,
		"email": resolvedEmail,
	})
}

type resolveSignatureRequest struct {
	Name  string    `json:"name"`
	Email string    `json:"email" binding:"required"`
	When  time.Time `json:"when"`
}

// ResolveSignature resolves a full signature, preserving its timestamp
func (h *MailmapHandler) ResolveSignature(c *gin.Context) {
	var req resolveSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolved, err := h.resolveService.ResolveSignature(c.Param("id"), mailmap.Signature{
		Name:  req.Name,
		Email: req.Email,
		When:  req.When,
	})
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if errors.Is(err, mailmap.ErrInvalidSignature) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resolved)
}
