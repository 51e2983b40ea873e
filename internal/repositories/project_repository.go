package repositories

import (
	"database/sql"
	"time"

	"github.com/canmap/canmap/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, repo_path, github_owner, github_repo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		project.ID, project.Name, project.RepoPath, project.GitHubOwner, project.GitHubRepo,
		project.CreatedAt, project.UpdatedAt,
	)

	return err
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	query := `
		SELECT id, name, repo_path, github_owner, github_repo, created_at, updated_at
		FROM projects WHERE id = ?
	`

	project := &models.Project{}
	err := r.db.QueryRow(query, id).Scan(
		&project.ID, &project.Name, &project.RepoPath, &project.GitHubOwner, &project.GitHubRepo,
		&project.CreatedAt, &project.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return project, nil
}

// GetAll retrieves all projects
func (r *ProjectRepository) GetAll() ([]*models.Project, error) {
	query := `
		SELECT id, name, repo_path, github_owner, github_repo, created_at, updated_at
		FROM projects ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		err := rows.Scan(
			&project.ID, &project.Name, &project.RepoPath, &project.GitHubOwner, &project.GitHubRepo,
			&project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, nil
}

// Update updates an existing project
func (r *ProjectRepository) Update(project *models.Project) error {
	project.UpdatedAt = time.Now()

	query := `
		UPDATE projects SET
			name = ?, repo_path = ?, github_owner = ?, github_repo = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		project.Name, project.RepoPath, project.GitHubOwner, project.GitHubRepo,
		project.UpdatedAt, project.ID,
	)

	return err
}

// Delete deletes a project by ID
func (r *ProjectRepository) Delete(id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
