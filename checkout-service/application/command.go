package application

import "github.com/pkg/errors"

// ErrInvalidCommand marks a command rejected before any work was done
var ErrInvalidCommand = errors.New("invalid command")

type invalidCommandError struct {
	err error
}

func (e *invalidCommandError) Error() string {
	return "invalid command: " + e.err.Error()
}

func (e *invalidCommandError) Unwrap() error {
	return e.err
}

func (e *invalidCommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}

func invalidCommand(err error) error {
	return &invalidCommandError{err: err}
}
