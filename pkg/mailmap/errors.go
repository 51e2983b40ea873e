package mailmap

import "errors"

var (
	// ErrParse indicates a buffer that cannot be decoded as mailmap text at
	// all. Individual malformed lines are skipped and never produce it.
	ErrParse = errors.New("mailmap: buffer is not valid mailmap text")

	// ErrInvalidArgument indicates a rule with an unusable match key.
	ErrInvalidArgument = errors.New("mailmap: invalid argument")

	// ErrRepository indicates the repository collaborator failed while
	// reading configuration or worktree state.
	ErrRepository = errors.New("mailmap: repository access failed")

	// ErrInvalidSignature indicates a resolved identity that cannot be
	// reassembled into a valid signature.
	ErrInvalidSignature = errors.New("mailmap: invalid signature")
)
