package services

import (
	"context"
	"fmt"

	"github.com/canmap/canmap/internal/gitrepo"
	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/pkg/mailmap"
)

// ResolveService answers identity queries against a project's effective
// mailmap and scans repositories to persist resolved authorship.
type ResolveService struct {
	mailmapService *MailmapService
	projectRepo    *repositories.ProjectRepository
	authorRepo     *repositories.AuthorRepository
}

// NewResolveService creates a new resolve service
func NewResolveService(
	mailmapService *MailmapService,
	projectRepo *repositories.ProjectRepository,
	authorRepo *repositories.AuthorRepository,
) *ResolveService {
	return &ResolveService{
		mailmapService: mailmapService,
		projectRepo:    projectRepo,
		authorRepo:     authorRepo,
	}
}

// Resolve maps a recorded (name, email) pair to its canonical form for a
// project. An unmatched pair comes back unchanged.
func (s *ResolveService) Resolve(projectID, name, email string) (string, string, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return "", "", fmt.Errorf("failed to get project: %w", err)
	}

	m, err := s.mailmapService.BuildMailmap(project)
	if err != nil {
		return "", "", err
	}

	resolvedName, resolvedEmail := m.Resolve(name, email)
	return resolvedName, resolvedEmail, nil
}

// ResolveSignature resolves the identity of a full signature, keeping its
// timestamp.
func (s *ResolveService) ResolveSignature(projectID string, sig mailmap.Signature) (mailmap.Signature, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return mailmap.Signature{}, fmt.Errorf("failed to get project: %w", err)
	}

	m, err := s.mailmapService.BuildMailmap(project)
	if err != nil {
		return mailmap.Signature{}, err
	}

	return m.ResolveSignature(sig)
}

// ScanAuthors walks the project repository's commit log, resolves every
// recorded author identity, and upserts the results. Returns the number of
// distinct recorded identities seen.
func (s *ResolveService) ScanAuthors(ctx context.Context, projectID string) (int, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to get project: %w", err)
	}
	if !project.HasLocalRepository() {
		return 0, fmt.Errorf("project %s has no local repository to scan", project.ID)
	}

	repo, err := gitrepo.Open(project.RepoPath)
	if err != nil {
		return 0, err
	}

	recorded, err := repo.ListAuthors(ctx)
	if err != nil {
		return 0, err
	}

	m, err := s.mailmapService.BuildMailmap(project)
	if err != nil {
		return 0, err
	}

	for _, identity := range recorded {
		author := ResolveAuthor(m, project.ID, identity)
		if err := s.authorRepo.Upsert(author); err != nil {
			return 0, fmt.Errorf("failed to store author %s: %w", identity.Email, err)
		}
	}

	return len(recorded), nil
}

// ResolveAuthor converts one recorded repository identity into an Author
// row carrying its canonical form.
func ResolveAuthor(m *mailmap.Mailmap, projectID string, identity gitrepo.Author) *models.Author {
	author := models.NewAuthor(projectID, identity.Name, identity.Email)
	author.CanonicalName, author.CanonicalEmail = m.Resolve(identity.Name, identity.Email)
	author.CommitCount = identity.Commits
	if !identity.LastCommit.IsZero() {
		lastCommit := identity.LastCommit
		author.LastCommitAt = &lastCommit
	}
	return author
}
