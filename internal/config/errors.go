package config

import (
	"errors"
	"strings"
)

// ErrConfig matches every *Error with errors.Is.
var ErrConfig = errors.New("config error")

// Error describes a configuration problem that aborts startup.
type Error struct {
	File   string // config file, empty if none was found
	Path   string // key path inside the file, e.g. "collections[1].tracks"
	Reason string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.File != "" {
		b.WriteString(" ")
		b.WriteString(e.File)
	}
	b.WriteString(": ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrConfig as a match so callers need not know the concrete type.
func (e *Error) Is(target error) bool {
	return target == ErrConfig
}
