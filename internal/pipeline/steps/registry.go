// Package steps provides step definitions, failure categories and per-step
// results for the scaffolding pipeline.
package steps

import (
	"errors"
	"fmt"
)

// Step names, in execution order.
const (
	ResolveDate      = "resolve_date"
	ProbeWorkspace   = "probe_workspace"
	EditManifest     = "edit_manifest"
	InvokeScaffold   = "invoke_scaffold"
	RenderTemplates  = "render_templates"
	LoadCredential   = "load_credential"
	FetchInput       = "fetch_input"
	FetchDescription = "fetch_description"
)

// Step categories.
const (
	CategoryLocal    = "local"
	CategoryExternal = "external"
	CategoryNetwork  = "network"
)

// Step statuses.
const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name     string
	Category string
	Optional bool
}

// StepRegistry lists every step in the order the pipeline runs them.
var StepRegistry = []StepDefinition{
	{Name: ResolveDate, Category: CategoryLocal},
	{Name: ProbeWorkspace, Category: CategoryLocal},
	{Name: EditManifest, Category: CategoryLocal},
	{Name: InvokeScaffold, Category: CategoryExternal},
	{Name: RenderTemplates, Category: CategoryLocal},
	{Name: LoadCredential, Category: CategoryLocal},
	{Name: FetchInput, Category: CategoryNetwork},
	{Name: FetchDescription, Category: CategoryNetwork, Optional: true},
}

// Lookup returns the definition of a step by name.
func Lookup(name string) (StepDefinition, bool) {
	for _, def := range StepRegistry {
		if def.Name == name {
			return def, true
		}
	}
	return StepDefinition{}, false
}

// StepResult represents the result of executing a step
type StepResult struct {
	Step     string
	Status   string
	Duration int64 // milliseconds
	Error    error
}

// Kind classifies why a step failed.
type Kind string

// Failure kinds.
const (
	KindPrecondition Kind = "precondition"
	KindExternalTool Kind = "external_tool"
	KindNetwork      Kind = "network"
	KindIO           Kind = "io"
)

// StepError is returned by the pipeline when a step fails.
type StepError struct {
	Step    string
	Kind    Kind
	Message string
	Cause   error
}

func (e *StepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed (%s): %s: %v", e.Step, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failed (%s): %s", e.Step, e.Kind, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

// KindOf returns the failure kind of err, or "" if err is not a StepError.
func KindOf(err error) Kind {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Kind
	}
	return ""
}
