// Package rendering renders the boilerplate files written into a new entry.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a source template
type TemplateError struct {
	Name    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error in %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error in %s: %s", e.Name, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure writing rendered output to disk
type RenderError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error for %s: %s", e.Path, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
