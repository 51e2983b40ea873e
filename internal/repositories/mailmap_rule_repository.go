package repositories

import (
	"database/sql"
	"time"

	"github.com/canmap/canmap/internal/models"
)

type MailmapRuleRepository struct {
	db *sql.DB
}

func NewMailmapRuleRepository(db *sql.DB) *MailmapRuleRepository {
	return &MailmapRuleRepository{db: db}
}

// Create creates a new mailmap rule
func (r *MailmapRuleRepository) Create(rule *models.MailmapRule) error {
	query := `
		INSERT INTO mailmap_rules (id, project_id, real_name, real_email, replace_name, replace_email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rule.ID, rule.ProjectID, rule.RealName, rule.RealEmail, rule.ReplaceName, rule.ReplaceEmail,
		rule.CreatedAt, rule.UpdatedAt,
	)

	return err
}

// GetByID retrieves a mailmap rule by ID
func (r *MailmapRuleRepository) GetByID(id string) (*models.MailmapRule, error) {
	query := `
		SELECT id, project_id, real_name, real_email, replace_name, replace_email, created_at, updated_at
		FROM mailmap_rules WHERE id = ?
	`

	rule := &models.MailmapRule{}
	err := r.db.QueryRow(query, id).Scan(
		&rule.ID, &rule.ProjectID, &rule.RealName, &rule.RealEmail, &rule.ReplaceName, &rule.ReplaceEmail,
		&rule.CreatedAt, &rule.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return rule, nil
}

// GetByProjectID retrieves all mailmap rules for a project in insertion order
func (r *MailmapRuleRepository) GetByProjectID(projectID string) ([]*models.MailmapRule, error) {
	query := `
		SELECT id, project_id, real_name, real_email, replace_name, replace_email, created_at, updated_at
		FROM mailmap_rules WHERE project_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*models.MailmapRule
	for rows.Next() {
		rule := &models.MailmapRule{}
		err := rows.Scan(
			&rule.ID, &rule.ProjectID, &rule.RealName, &rule.RealEmail, &rule.ReplaceName, &rule.ReplaceEmail,
			&rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// Update updates an existing mailmap rule
func (r *MailmapRuleRepository) Update(rule *models.MailmapRule) error {
	rule.UpdatedAt = time.Now()

	query := `
		UPDATE mailmap_rules SET
			real_name = ?, real_email = ?, replace_name = ?, replace_email = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		rule.RealName, rule.RealEmail, rule.ReplaceName, rule.ReplaceEmail, rule.UpdatedAt, rule.ID,
	)

	return err
}

// Delete deletes a mailmap rule by ID
func (r *MailmapRuleRepository) Delete(id string) error {
	query := `DELETE FROM mailmap_rules WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

// DeleteByProjectID deletes all mailmap rules for a project
func (r *MailmapRuleRepository) DeleteByProjectID(projectID string) error {
	query := `DELETE FROM mailmap_rules WHERE project_id = ?`
	_, err := r.db.Exec(query, projectID)
	return err
}
