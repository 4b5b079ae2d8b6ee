package hook

import (
	"errors"
	"fmt"
)

// HandlerError attributes a handler failure to its stage and plugin. It
// unwraps to the handler's own error.
type HandlerError struct {
	Stage    string
	PluginID string
	Err      error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s hook (plugin %s): %v", e.Stage, e.PluginID, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// attribute tags err with the stage and plugin unless a handler already
// returned a HandlerError, e.g. from a nested pipeline.
func attribute(stage, pluginID string, err error) error {
	var he *HandlerError
	if errors.As(err, &he) {
		return err
	}
	return &HandlerError{Stage: stage, PluginID: pluginID, Err: err}
}
