package update

import "errors"

var (
	errNoService   = errors.New("no service configured")
	errNotTaskView = errors.New("switch to a task view first")
)
