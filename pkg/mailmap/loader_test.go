package mailmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSource is an in-memory Source for loader tests.
type fakeSource struct {
	workTree    bool
	workTreeErr error
	mailmap     []byte
	hasMailmap  bool
	config      map[string]string
	configErr   error
	blobs       map[string][]byte
	files       map[string][]byte
}

func (s *fakeSource) HasWorkTree() (bool, error) {
	return s.workTree, s.workTreeErr
}

func (s *fakeSource) WorkTreeMailmap() ([]byte, bool, error) {
	return s.mailmap, s.hasMailmap, nil
}

func (s *fakeSource) ConfigValue(key string) (string, bool, error) {
	if s.configErr != nil {
		return "", false, s.configErr
	}
	value, ok := s.config[key]
	return value, ok, nil
}

func (s *fakeSource) ReadBlob(spec string) ([]byte, error) {
	if buf, ok := s.blobs[spec]; ok {
		return buf, nil
	}
	return nil, errors.New("blob not found")
}

func (s *fakeSource) ReadFile(path string) ([]byte, error) {
	if buf, ok := s.files[path]; ok {
		return buf, nil
	}
	return nil, errors.New("file not found")
}

func TestFromRepositoryNoSourcesYieldsEmptyMailmap(t *testing.T) {
	m, err := FromRepository(&fakeSource{workTree: true})

	assert.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestFromRepositoryReadsWorkTreeMailmap(t *testing.T) {
	src := &fakeSource{
		workTree:   true,
		hasMailmap: true,
		mailmap:    []byte("Jane Doe <jane@new.com> <jane@old.com>\n"),
	}

	m, err := FromRepository(src)

	assert.NoError(t, err)
	name, email := m.Resolve("J", "jane@old.com")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "jane@new.com", email)
}

func TestFromRepositoryMergeOrder(t *testing.T) {
	// All three sources define a rule for the same key; mailmap.file is
	// loaded last and wins.
	src := &fakeSource{
		workTree:   true,
		hasMailmap: true,
		mailmap:    []byte("From Tree <tree@x.com> <old@x.com>\n"),
		config: map[string]string{
			ConfigBlobKey: "refs/meta/mailmap:.mailmap",
			ConfigFileKey: "/etc/canmap/mailmap",
		},
		blobs: map[string][]byte{
			"refs/meta/mailmap:.mailmap": []byte("From Blob <blob@x.com> <old@x.com>\n"),
		},
		files: map[string][]byte{
			"/etc/canmap/mailmap": []byte("From File <file@x.com> <old@x.com>\n"),
		},
	}

	m, err := FromRepository(src)

	assert.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	name, email := m.Resolve("anyone", "old@x.com")
	assert.Equal(t, "From File", name)
	assert.Equal(t, "file@x.com", email)
}

func TestFromRepositoryBareDefaultsToHeadMailmap(t *testing.T) {
	src := &fakeSource{
		workTree: false,
		blobs: map[string][]byte{
			"HEAD:.mailmap": []byte("Jane <jane@new.com> <jane@old.com>\n"),
		},
	}

	m, err := FromRepository(src)

	assert.NoError(t, err)
	name, _ := m.Resolve("J", "jane@old.com")
	assert.Equal(t, "Jane", name)
}

func TestFromRepositorySkipsUnreadableSources(t *testing.T) {
	src := &fakeSource{
		workTree: true,
		config: map[string]string{
			ConfigBlobKey: "refs/meta/mailmap:.mailmap",
			ConfigFileKey: "/missing/mailmap",
		},
		// No blobs or files behind the configured names.
	}

	m, err := FromRepository(src)

	assert.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestFromRepositoryPropagatesCollaboratorErrors(t *testing.T) {
	t.Run("Worktree state", func(t *testing.T) {
		src := &fakeSource{workTreeErr: errors.New("repository is corrupt")}

		_, err := FromRepository(src)

		assert.ErrorIs(t, err, ErrRepository)
	})

	t.Run("Configuration read", func(t *testing.T) {
		src := &fakeSource{workTree: true, configErr: errors.New("config is corrupt")}

		_, err := FromRepository(src)

		assert.ErrorIs(t, err, ErrRepository)
	})
}
