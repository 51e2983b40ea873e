package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a git repository whose authorship is being normalized
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RepoPath    string    `json:"repo_path"`    // Local repository path, may be empty
	GitHubOwner string    `json:"github_owner"` // For .mailmap imports over the API
	GitHubRepo  string    `json:"github_repo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a new Project with a generated UUID
func NewProject(name, repoPath string) *Project {
	now := time.Now()
	return &Project{
		ID:        uuid.New().String(),
		Name:      name,
		RepoPath:  repoPath,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasLocalRepository checks if the project points at a local repository
func (p *Project) HasLocalRepository() bool {
	return p.RepoPath != ""
}

// HasGitHubRepository checks if the project names a GitHub repository
func (p *Project) HasGitHubRepository() bool {
	return p.GitHubOwner != "" && p.GitHubRepo != ""
}
