package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/canmap/canmap/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubMailmapService imports a repository's .mailmap from the GitHub
// contents API, without needing a local clone.
type GitHubMailmapService struct {
	mailmapService *MailmapService
	client         *github.Client
}

// NewGitHubMailmapService creates a new GitHub mailmap service. An empty
// token limits imports to public repositories.
func NewGitHubMailmapService(mailmapService *MailmapService, token string) *GitHubMailmapService {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}

	return &GitHubMailmapService{
		mailmapService: mailmapService,
		client:         github.NewClient(httpClient),
	}
}

// FetchMailmap downloads the .mailmap file at the root of the repository's
// default branch.
func (s *GitHubMailmapService) FetchMailmap(ctx context.Context, owner, repo string) ([]byte, error) {
	content, _, _, err := s.client.Repositories.GetContents(ctx, owner, repo, ".mailmap", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch .mailmap from %s/%s: %w", owner, repo, err)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode .mailmap content: %w", err)
	}
	return []byte(decoded), nil
}

// ImportForProject fetches the project's GitHub .mailmap and stores its
// entries as project rules. Returns the number of imported entries.
func (s *GitHubMailmapService) ImportForProject(ctx context.Context, project *models.Project) (int, error) {
	if !project.HasGitHubRepository() {
		return 0, fmt.Errorf("project %s has no GitHub repository configured", project.ID)
	}

	buffer, err := s.FetchMailmap(ctx, project.GitHubOwner, project.GitHubRepo)
	if err != nil {
		return 0, err
	}

	return s.mailmapService.ImportBuffer(project.ID, buffer)
}
