package models

import (
	"time"

	"github.com/google/uuid"
)

// Author represents one recorded commit identity in a project together
// with its canonical form after mailmap resolution
type Author struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	CanonicalName  string     `json:"canonical_name"`
	CanonicalEmail string     `json:"canonical_email"`
	CommitCount    int        `json:"commit_count"`
	LastCommitAt   *time.Time `json:"last_commit_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewAuthor creates a new Author with a generated UUID
func NewAuthor(projectID, name, email string) *Author {
	now := time.Now()
	return &Author{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Name:           name,
		Email:          email,
		CanonicalName:  name,
		CanonicalEmail: email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsResolved checks if resolution changed the recorded identity
func (a *Author) IsResolved() bool {
	return a.CanonicalName != a.Name || a.CanonicalEmail != a.Email
}
