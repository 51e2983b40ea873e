// Package gitrepo reads repository state through the git CLI. It is the
// collaborator behind mailmap loading and author scanning; it never writes
// to the repository.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// MailmapFileName is the conventional mailmap path at the worktree root.
const MailmapFileName = ".mailmap"

// Repository is a handle to a local git repository.
type Repository struct {
	path     string
	workTree string // empty for bare repositories
}

// Author is one distinct (name, email) pair seen in the commit log.
type Author struct {
	Name       string
	Email      string
	Commits    int
	LastCommit time.Time
}

// Open validates that path points at a git repository and returns a handle.
func Open(path string) (*Repository, error) {
	out, err := runGit(path, "rev-parse", "--is-bare-repository")
	if err != nil {
		return nil, fmt.Errorf("not a git repository at %s: %w", path, err)
	}

	repo := &Repository{path: path}
	if strings.TrimSpace(out) == "false" {
		top, err := runGit(path, "rev-parse", "--show-toplevel")
		if err != nil {
			return nil, fmt.Errorf("failed to locate worktree root: %w", err)
		}
		repo.workTree = strings.TrimSpace(top)
	}

	return repo, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// HasWorkTree reports whether the repository has a working tree.
func (r *Repository) HasWorkTree() (bool, error) {
	return r.workTree != "", nil
}

// WorkTreeMailmap returns the bytes of the worktree's .mailmap file, or
// false when the file does not exist.
func (r *Repository) WorkTreeMailmap() ([]byte, bool, error) {
	if r.workTree == "" {
		return nil, false, nil
	}

	buf, err := os.ReadFile(filepath.Join(r.workTree, MailmapFileName))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return buf, true, nil
}

// ConfigValue returns the configuration value for key, or false when the
// key is unset. git exits with code 1 for an unset key, which is not an
// error here.
func (r *Repository) ConfigValue(key string) (string, bool, error) {
	out, err := runGit(r.path, "config", "--get", key)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return strings.TrimSpace(out), true, nil
}

// ReadBlob resolves a revision:path spec to blob bytes.
func (r *Repository) ReadBlob(spec string) ([]byte, error) {
	out, err := runGit(r.path, "cat-file", "blob", spec)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", spec, err)
	}
	return []byte(out), nil
}

// ReadFile reads a file by path, resolving relative paths against the
// worktree root.
func (r *Repository) ReadFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && r.workTree != "" {
		path = filepath.Join(r.workTree, path)
	}
	return os.ReadFile(path)
}

// ListAuthors walks the commit log and tallies distinct recorded
// (name, email) pairs with their commit counts and last commit time.
func (r *Repository) ListAuthors(ctx context.Context) ([]Author, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", r.path, "log", "--all", "--format=%an%x1f%ae%x1f%aI")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list commit authors: %w", err)
	}

	byIdentity := make(map[string]*Author)
	var order []string
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Split(line, "\x1f")
		if len(fields) != 3 {
			continue
		}

		name, email := fields[0], fields[1]
		when, _ := time.Parse(time.RFC3339, fields[2])

		key := name + "\x1f" + email
		author, ok := byIdentity[key]
		if !ok {
			author = &Author{Name: name, Email: email}
			byIdentity[key] = author
			order = append(order, key)
		}
		author.Commits++
		if when.After(author.LastCommit) {
			author.LastCommit = when
		}
	}

	authors := make([]Author, 0, len(order))
	for _, key := range order {
		authors = append(authors, *byIdentity[key])
	}
	return authors, nil
}

// runGit executes a git subcommand against the repository at dir.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.Command("git", fullArgs...)

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
