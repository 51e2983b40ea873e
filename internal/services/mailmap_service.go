package services

import (
	"fmt"

	"github.com/canmap/canmap/internal/gitrepo"
	"github.com/canmap/canmap/internal/models"
	"github.com/canmap/canmap/internal/repositories"
	"github.com/canmap/canmap/pkg/mailmap"
)

// MailmapService manages per-project mailmap rules and builds the mailmap
// used for resolution: repository sources first, database rules layered on
// top so they win for overlapping keys.
type MailmapService struct {
	ruleRepo *repositories.MailmapRuleRepository
}

// NewMailmapService creates a new mailmap service
func NewMailmapService(ruleRepo *repositories.MailmapRuleRepository) *MailmapService {
	return &MailmapService{
		ruleRepo: ruleRepo,
	}
}

// CreateRule validates and stores a new mailmap rule
func (s *MailmapService) CreateRule(projectID string, realName, realEmail, replaceName *string, replaceEmail string) (*models.MailmapRule, error) {
	// Reject keys the resolver could never match before they reach storage.
	if err := mailmap.New().AddEntry(realName, realEmail, replaceName, replaceEmail); err != nil {
		return nil, err
	}

	rule := models.NewMailmapRule(projectID, realName, realEmail, replaceName, replaceEmail)
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("failed to store mailmap rule: %w", err)
	}
	return rule, nil
}

// GetRulesByProjectID retrieves a project's rules in insertion order
func (s *MailmapService) GetRulesByProjectID(projectID string) ([]*models.MailmapRule, error) {
	return s.ruleRepo.GetByProjectID(projectID)
}

// DeleteRule deletes a rule by ID
func (s *MailmapService) DeleteRule(id string) error {
	return s.ruleRepo.Delete(id)
}

// DeleteRulesByProjectID deletes all rules of a project
func (s *MailmapService) DeleteRulesByProjectID(projectID string) error {
	return s.ruleRepo.DeleteByProjectID(projectID)
}

// ImportBuffer parses mailmap file content and stores every entry as a
// project rule. Returns the number of imported entries.
func (s *MailmapService) ImportBuffer(projectID string, buffer []byte) (int, error) {
	m, err := mailmap.FromBuffer(buffer)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, entry := range m.Entries() {
		rule := models.NewMailmapRule(projectID, entry.RealName, entry.RealEmail, entry.ReplaceName, entry.ReplaceEmail)
		if err := s.ruleRepo.Create(rule); err != nil {
			return imported, fmt.Errorf("failed to store imported rule: %w", err)
		}
		imported++
	}
	return imported, nil
}

// BuildMailmap assembles the effective mailmap for a project
func (s *MailmapService) BuildMailmap(project *models.Project) (*mailmap.Mailmap, error) {
	m := mailmap.New()

	if project.HasLocalRepository() {
		repo, err := gitrepo.Open(project.RepoPath)
		if err != nil {
			return nil, err
		}
		m, err = mailmap.FromRepository(repo)
		if err != nil {
			return nil, err
		}
	}

	rules, err := s.ruleRepo.GetByProjectID(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mailmap rules: %w", err)
	}

	return ApplyRules(m, rules)
}

// ApplyRules layers stored rules on top of a mailmap. Later rules replace
// earlier ones with the same (replace name, replace email) key.
func ApplyRules(m *mailmap.Mailmap, rules []*models.MailmapRule) (*mailmap.Mailmap, error) {
	for _, rule := range rules {
		if err := m.AddEntry(rule.RealName, rule.RealEmail, rule.ReplaceName, rule.ReplaceEmail); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
	}
	return m, nil
}
