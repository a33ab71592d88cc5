package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	// EntryPointFile is the binary entry point inside the crate's src directory.
	EntryPointFile = "main.rs"
	// LibraryFile is the library stub inside the crate's src directory.
	LibraryFile = "lib.rs"
	// ReadmeFile holds the puzzle description at the crate root.
	ReadmeFile = "README.md"
)

const entryPointTemplate = `fn main() {
    let (part1, part2) = {{.Crate}}::solve();
    println!("{}", part1);
    println!("{}", part2);
}
`

const libraryTemplate = `#[inline]
pub fn solve() -> (T, T) {
    unimplemented!()
}
`

const readmeTemplate = `# {{.Title}}

<{{.URL}}>

{{.Text}}
`

var (
	entryPointTmpl = template.Must(template.New(EntryPointFile).Parse(entryPointTemplate))
	libraryTmpl    = template.Must(template.New(LibraryFile).Parse(libraryTemplate))
	readmeTmpl     = template.Must(template.New(ReadmeFile).Parse(readmeTemplate))
)

// TemplateData is the data passed to the source templates
type TemplateData struct {
	Crate string
}

// ReadmeData is the data passed to the README template
type ReadmeData struct {
	Title string
	URL   string
	Text  string
}

// Sources lists the files written by WriteSources
type Sources struct {
	EntryPoint string
	Library    string
}

// RenderEntryPoint renders main.rs, which calls <crate>::solve() and prints
// both parts of the answer on their own line.
func RenderEntryPoint(crate string) (string, error) {
	return execute(entryPointTmpl, TemplateData{Crate: crate})
}

// RenderLibrary renders lib.rs, a solve stub that is not yet implemented.
func RenderLibrary(crate string) (string, error) {
	return execute(libraryTmpl, TemplateData{Crate: crate})
}

// RenderReadme renders the puzzle description page.
func RenderReadme(data ReadmeData) (string, error) {
	data.Text = strings.TrimSpace(data.Text)
	return execute(readmeTmpl, data)
}

// WriteSources renders both source templates into srcDir, overwriting
// whatever the scaffolding tool generated there.
func WriteSources(srcDir, crate string) (*Sources, error) {
	mainSrc, err := RenderEntryPoint(crate)
	if err != nil {
		return nil, err
	}
	libSrc, err := RenderLibrary(crate)
	if err != nil {
		return nil, err
	}

	sources := &Sources{
		EntryPoint: filepath.Join(srcDir, EntryPointFile),
		Library:    filepath.Join(srcDir, LibraryFile),
	}
	if err := writeFile(sources.EntryPoint, mainSrc); err != nil {
		return nil, err
	}
	if err := writeFile(sources.Library, libSrc); err != nil {
		return nil, err
	}

	return sources, nil
}

// WriteReadme renders the README into the crate directory.
func WriteReadme(crateDir string, data ReadmeData) (string, error) {
	content, err := RenderReadme(data)
	if err != nil {
		return "", err
	}
	path := filepath.Join(crateDir, ReadmeFile)
	if err := writeFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &TemplateError{
			Name:    tmpl.Name(),
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return sb.String(), nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &RenderError{
			Path:    path,
			Message: fmt.Sprintf("failed to write %s", filepath.Base(path)),
			Cause:   err,
		}
	}
	return nil
}
