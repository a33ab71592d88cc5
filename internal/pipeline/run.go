// Package pipeline runs the steps that scaffold a new daily puzzle entry.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/aoc-start/internal/config"
	"github.com/jonathan/aoc-start/internal/fetch"
	"github.com/jonathan/aoc-start/internal/pipeline/steps"
	"github.com/jonathan/aoc-start/internal/puzzle"
	"github.com/jonathan/aoc-start/internal/rendering"
	"github.com/jonathan/aoc-start/internal/scaffold"
	"github.com/jonathan/aoc-start/internal/workspace"
)

// Outcome is the terminal state of a successful run.
type Outcome string

const (
	// OutcomeAlreadyExists means the entry directory was present and nothing was touched.
	OutcomeAlreadyExists Outcome = "already_exists"
	// OutcomeCompleted means every step ran.
	OutcomeCompleted Outcome = "completed"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// Date selects the puzzle. When zero, it is derived from Now.
	Date puzzle.Date
	Now  func() time.Time

	Root         string // workspace directory; relative paths below resolve against it
	ManifestPath string
	SessionPath  string
	InputFile    string
	BaseURL      string

	Scaffolder *scaffold.Invoker
	Fetch      *fetch.Options
	Describe   bool

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result describes what a run did.
type Result struct {
	RunID           uuid.UUID
	Date            puzzle.Date
	Entry           string
	Outcome         Outcome
	EntryDir        string
	ManifestUpdated bool
	Sources         *rendering.Sources
	InputPath       string
	ReadmePath      string
	Title           string
	Steps           []steps.StepResult
}

type runner struct {
	ctx    context.Context
	opts   *RunOptions
	result *Result
	log    *zap.Logger
}

// Run scaffolds the entry for opts.Date. It stops at the first failing
// step and returns a *steps.StepError describing it, along with the
// partial Result. Work done by earlier steps is left on disk, except that
// the manifest is restored when the scaffolding tool fails.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	r := newRunner(ctx, &opts)
	res := r.result

	if err := r.step(steps.ResolveDate, r.resolveDate); err != nil {
		return res, err
	}

	var exists bool
	err := r.step(steps.ProbeWorkspace, func() error {
		var err error
		exists, err = workspace.Exists(opts.Root, res.Entry)
		if err != nil {
			return fail(steps.ProbeWorkspace, steps.KindPrecondition, "cannot inspect entry directory", err)
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	if exists {
		res.Outcome = OutcomeAlreadyExists
		r.log.Info("Entry already exists", zap.String("dir", res.EntryDir))
		return res, nil
	}

	var manifest *workspace.Manifest
	if err := r.step(steps.EditManifest, func() error {
		var err error
		manifest, err = r.editManifest()
		return err
	}); err != nil {
		return res, err
	}

	var srcDir string
	if err := r.step(steps.InvokeScaffold, func() error {
		var err error
		srcDir, err = r.invokeScaffold(manifest)
		return err
	}); err != nil {
		return res, err
	}

	if err := r.step(steps.RenderTemplates, func() error {
		sources, err := rendering.WriteSources(srcDir, res.Entry)
		if err != nil {
			return fail(steps.RenderTemplates, steps.KindIO, "cannot write source templates", err)
		}
		res.Sources = sources
		return nil
	}); err != nil {
		return res, err
	}

	session, err := r.loadCredential()
	if err != nil {
		return res, err
	}

	if err := r.fetchInput(srcDir, session); err != nil {
		return res, err
	}

	if opts.Describe {
		if err := r.step(steps.FetchDescription, func() error {
			return r.fetchDescription(session)
		}); err != nil {
			return res, err
		}
	} else {
		r.skip(steps.FetchDescription)
	}

	res.Outcome = OutcomeCompleted
	r.log.Info("Entry scaffolded", zap.String("dir", res.EntryDir), zap.String("input", res.InputPath))
	return res, nil
}

// RefreshInput downloads the input again for an entry that already exists.
// It runs only the credential and fetch steps.
func RefreshInput(ctx context.Context, opts RunOptions) (*Result, error) {
	r := newRunner(ctx, &opts)
	res := r.result

	if err := r.step(steps.ResolveDate, r.resolveDate); err != nil {
		return res, err
	}

	if err := r.step(steps.ProbeWorkspace, func() error {
		exists, err := workspace.Exists(opts.Root, res.Entry)
		if err != nil {
			return fail(steps.ProbeWorkspace, steps.KindPrecondition, "cannot inspect entry directory", err)
		}
		if !exists {
			return fail(steps.ProbeWorkspace, steps.KindPrecondition,
				fmt.Sprintf("%s does not exist; run start_solve first", res.Entry), nil)
		}
		return nil
	}); err != nil {
		return res, err
	}

	session, err := r.loadCredential()
	if err != nil {
		return res, err
	}

	if err := r.fetchInput(filepath.Join(res.EntryDir, "src"), session); err != nil {
		return res, err
	}

	res.Outcome = OutcomeCompleted
	return res, nil
}

func newRunner(ctx context.Context, opts *RunOptions) *runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.ManifestPath == "" {
		opts.ManifestPath = config.DefaultManifest
	}
	if opts.SessionPath == "" {
		opts.SessionPath = config.DefaultSessionFile
	}
	if opts.InputFile == "" {
		opts.InputFile = config.DefaultInputFile
	}
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultBaseURL
	}
	if opts.Scaffolder == nil {
		opts.Scaffolder = scaffold.NewInvoker(scaffold.NewRealRunner(), "")
	}

	res := &Result{RunID: uuid.New()}
	return &runner{
		ctx:    ctx,
		opts:   opts,
		result: res,
		log:    opts.Logger.With(zap.String("run_id", res.RunID.String())),
	}
}

// step runs fn as the named step, recording its result and timing.
func (r *runner) step(name string, fn func() error) error {
	def, _ := steps.Lookup(name)
	r.emit(name, def.Category, "started", nil)
	r.log.Debug("Step started", zap.String("step", name))

	start := time.Now()
	err := fn()
	sr := steps.StepResult{
		Step:     name,
		Status:   steps.StatusCompleted,
		Duration: time.Since(start).Milliseconds(),
	}
	if err != nil {
		sr.Status = steps.StatusFailed
		sr.Error = err
		r.log.Error("Step failed", zap.String("step", name), zap.Error(err))
	} else {
		r.log.Debug("Step completed", zap.String("step", name), zap.Int64("duration_ms", sr.Duration))
	}
	r.result.Steps = append(r.result.Steps, sr)
	r.emit(name, def.Category, sr.Status, nil)
	return err
}

func (r *runner) skip(name string) {
	def, _ := steps.Lookup(name)
	r.result.Steps = append(r.result.Steps, steps.StepResult{Step: name, Status: steps.StatusSkipped})
	r.emit(name, def.Category, steps.StatusSkipped, nil)
}

func (r *runner) emit(step, category, message string, content any) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    r.result.RunID.String(),
			Content:  content,
		})
	}
}

func (r *runner) resolveDate() error {
	d := r.opts.Date
	if d == (puzzle.Date{}) {
		// The clock is trusted; no range check.
		d = puzzle.FromTime(r.opts.Now())
	} else if err := d.Validate(); err != nil {
		return fail(steps.ResolveDate, steps.KindPrecondition, "invalid date", err)
	}

	r.result.Date = d
	r.result.Entry = d.Entry()
	r.result.EntryDir = filepath.Join(r.opts.Root, d.Entry())
	r.log = r.log.With(zap.String("entry", d.Entry()))
	r.emit(steps.ResolveDate, steps.CategoryLocal, "resolved", d)
	return nil
}

func (r *runner) editManifest() (*workspace.Manifest, error) {
	path := r.resolve(r.opts.ManifestPath)

	manifest, err := workspace.LoadManifest(path)
	if err != nil {
		return nil, fail(steps.EditManifest, steps.KindPrecondition, "cannot load manifest", err)
	}

	added, err := manifest.AppendMember(r.result.Entry)
	if err != nil {
		return nil, fail(steps.EditManifest, steps.KindPrecondition, "cannot register entry", err)
	}
	if !added {
		r.log.Warn("Entry already registered in manifest", zap.String("manifest", path))
		return manifest, nil
	}

	if err := manifest.Save(); err != nil {
		return nil, fail(steps.EditManifest, steps.KindIO, "cannot rewrite manifest", err)
	}
	r.result.ManifestUpdated = true
	return manifest, nil
}

// invokeScaffold creates the crate. The manifest already lists the entry
// so the tool sees it as a workspace member; on failure that edit is
// rolled back.
func (r *runner) invokeScaffold(manifest *workspace.Manifest) (string, error) {
	srcDir, err := r.opts.Scaffolder.NewBinary(r.ctx, r.opts.Root, r.result.Entry)
	if err == nil {
		return srcDir, nil
	}

	stepErr := fail(steps.InvokeScaffold, steps.KindExternalTool, "scaffolding tool failed", err)
	if r.result.ManifestUpdated {
		if restoreErr := manifest.Restore(); restoreErr != nil {
			r.log.Error("Manifest rollback failed", zap.Error(restoreErr))
			stepErr.Message += fmt.Sprintf(" (manifest rollback also failed: %v)", restoreErr)
		} else {
			r.result.ManifestUpdated = false
			r.log.Info("Manifest restored", zap.String("manifest", manifest.Path()))
		}
	}
	return "", stepErr
}

func (r *runner) loadCredential() (string, error) {
	var session string
	err := r.step(steps.LoadCredential, func() error {
		var err error
		session, err = config.LoadSession(r.resolve(r.opts.SessionPath))
		if err != nil {
			return fail(steps.LoadCredential, steps.KindPrecondition, "cannot load session token", err)
		}
		return nil
	})
	return session, err
}

func (r *runner) fetchInput(srcDir, session string) error {
	return r.step(steps.FetchInput, func() error {
		res, err := fetch.Input(r.ctx, r.opts.BaseURL, r.result.Date, session, r.opts.Fetch)
		if err != nil {
			return fail(steps.FetchInput, steps.KindNetwork, "cannot download puzzle input", err)
		}

		path := filepath.Join(srcDir, r.opts.InputFile)
		if err := fetch.WriteInput(path, res.Body); err != nil {
			return fail(steps.FetchInput, steps.KindIO, "cannot save puzzle input", err)
		}
		r.result.InputPath = path
		r.log.Info("Input saved", zap.String("path", path), zap.Int("bytes", len(res.Body)))
		return nil
	})
}

func (r *runner) fetchDescription(session string) error {
	desc, err := fetch.Describe(r.ctx, r.opts.BaseURL, r.result.Date, session, r.opts.Fetch)
	if err != nil {
		return fail(steps.FetchDescription, steps.KindNetwork, "cannot download puzzle description", err)
	}

	path, err := rendering.WriteReadme(r.result.EntryDir, rendering.ReadmeData{
		Title: desc.Title,
		URL:   desc.URL,
		Text:  desc.Text,
	})
	if err != nil {
		return fail(steps.FetchDescription, steps.KindIO, "cannot write README", err)
	}
	r.result.ReadmePath = path
	r.result.Title = desc.Title
	return nil
}

func (r *runner) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.opts.Root, path)
}

func fail(step string, kind steps.Kind, msg string, cause error) *steps.StepError {
	return &steps.StepError{Step: step, Kind: kind, Message: msg, Cause: cause}
}
