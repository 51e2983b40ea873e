package mailmap

import "fmt"

// Configuration keys naming additional mailmap sources.
const (
	ConfigBlobKey = "mailmap.blob"
	ConfigFileKey = "mailmap.file"
)

// defaultBlobSpec is consulted for bare repositories when mailmap.blob is
// not set.
const defaultBlobSpec = "HEAD:.mailmap"

// Source is the repository collaborator the loader reads from. Absent
// sources are reported through the bool returns, not through errors; an
// error from any method means repository state itself could not be read.
type Source interface {
	// HasWorkTree reports whether the repository has a working tree.
	HasWorkTree() (bool, error)

	// WorkTreeMailmap returns the bytes of the working tree's .mailmap
	// file, or false when no such file exists.
	WorkTreeMailmap() ([]byte, bool, error)

	// ConfigValue returns the configuration value for key, or false when
	// the key is unset.
	ConfigValue(key string) (string, bool, error)

	// ReadBlob resolves a revision:path spec to blob bytes.
	ReadBlob(spec string) ([]byte, error)

	// ReadFile reads a file by path, relative paths resolved against the
	// working tree.
	ReadFile(path string) ([]byte, error)
}

// FromRepository builds a Mailmap from a repository's configured sources,
// merged in order: the working tree's .mailmap, the mailmap.blob blob
// (defaulting to HEAD:.mailmap for bare repositories), then the
// mailmap.file path. Later sources override earlier ones per rule key.
// A source that is absent or unreadable is skipped; a repository with no
// sources at all yields a valid empty Mailmap.
func FromRepository(src Source) (*Mailmap, error) {
	m := New()

	hasWorkTree, err := src.HasWorkTree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepository, err)
	}

	if hasWorkTree {
		if buf, ok, err := src.WorkTreeMailmap(); err == nil && ok {
			m.AddAll(buf)
		}
	}

	blobSpec, ok, err := src.ConfigValue(ConfigBlobKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepository, err)
	}
	if !ok && !hasWorkTree {
		blobSpec, ok = defaultBlobSpec, true
	}
	if ok {
		if buf, err := src.ReadBlob(blobSpec); err == nil {
			m.AddAll(buf)
		}
	}

	path, ok, err := src.ConfigValue(ConfigFileKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepository, err)
	}
	if ok {
		if buf, err := src.ReadFile(path); err == nil {
			m.AddAll(buf)
		}
	}

	return m, nil
}
