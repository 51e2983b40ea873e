package repositories

import (
	"database/sql"
	"time"

	"github.com/canmap/canmap/internal/models"
)

type AuthorRepository struct {
	db *sql.DB
}

func NewAuthorRepository(db *sql.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Upsert inserts an author or refreshes an existing one, keyed by the
// recorded (project, name, email) identity
func (r *AuthorRepository) Upsert(author *models.Author) error {
	author.UpdatedAt = time.Now()

	query := `
		INSERT INTO authors (id, project_id, name, email, canonical_name, canonical_email, commit_count, last_commit_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id, name, email) DO UPDATE SET
			canonical_name = excluded.canonical_name,
			canonical_email = excluded.canonical_email,
			commit_count = excluded.commit_count,
			last_commit_at = excluded.last_commit_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		author.ID, author.ProjectID, author.Name, author.Email,
		author.CanonicalName, author.CanonicalEmail, author.CommitCount, author.LastCommitAt,
		author.CreatedAt, author.UpdatedAt,
	)

	return err
}

// GetByProjectID retrieves all authors for a project
func (r *AuthorRepository) GetByProjectID(projectID string) ([]*models.Author, error) {
	query := `
		SELECT id, project_id, name, email, canonical_name, canonical_email, commit_count, last_commit_at, created_at, updated_at
		FROM authors WHERE project_id = ?
		ORDER BY commit_count DESC, email ASC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		author := &models.Author{}
		err := rows.Scan(
			&author.ID, &author.ProjectID, &author.Name, &author.Email,
			&author.CanonicalName, &author.CanonicalEmail, &author.CommitCount, &author.LastCommitAt,
			&author.CreatedAt, &author.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}

	return authors, nil
}

// DeleteByProjectID deletes all authors for a project
func (r *AuthorRepository) DeleteByProjectID(projectID string) error {
	query := `DELETE FROM authors WHERE project_id = ?`
	_, err := r.db.Exec(query, projectID)
	return err
}
