package models

import (
	"time"

	"github.com/google/uuid"
)

// MailmapRule represents one stored identity override for a project.
// Nullable fields mirror mailmap semantics: a NULL replace_name matches any
// recorded name, a NULL real_name or real_email leaves that field unchanged.
type MailmapRule struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	RealName     *string   `json:"real_name"`
	RealEmail    *string   `json:"real_email"`
	ReplaceName  *string   `json:"replace_name"`
	ReplaceEmail string    `json:"replace_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMailmapRule creates a new MailmapRule with a generated UUID
func NewMailmapRule(projectID string, realName, realEmail, replaceName *string, replaceEmail string) *MailmapRule {
	now := time.Now()
	return &MailmapRule{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		RealName:     realName,
		RealEmail:    realEmail,
		ReplaceName:  replaceName,
		ReplaceEmail: replaceEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
