package workspace

import (
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// DefaultManifest is the workspace manifest file name.
const DefaultManifest = "Cargo.toml"

// ManifestError represents a manifest that cannot be read, parsed or rewritten.
type ManifestError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ManifestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("manifest error in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("manifest error in %s: %s", e.Path, e.Message)
}

func (e *ManifestError) Unwrap() error {
	return e.Cause
}

// Manifest is a loaded workspace manifest. The bytes it was loaded from are
// kept so a failed run can put the file back the way it was.
type Manifest struct {
	path     string
	perm     os.FileMode
	original []byte
	doc      map[string]any
}

// LoadManifest reads and decodes the manifest at path.
// The document must contain a [workspace] table with a members array.
func LoadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Message: "failed to stat manifest", Cause: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Message: "failed to read manifest", Cause: err}
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ManifestError{Path: path, Message: "failed to parse TOML", Cause: err}
	}

	m := &Manifest{
		path:     path,
		perm:     info.Mode().Perm(),
		original: data,
		doc:      doc,
	}

	// Surface structural problems at load time rather than on append.
	if _, err := m.Members(); err != nil {
		return nil, err
	}

	return m, nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Members returns the registered workspace members in file order.
func (m *Manifest) Members() ([]string, error) {
	raw, err := m.rawMembers()
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, &ManifestError{
				Path:    m.path,
				Message: fmt.Sprintf("workspace.members[%d] is %T, expected a string", i, v),
			}
		}
		members = append(members, s)
	}
	return members, nil
}

// AppendMember adds name after all existing members. It reports false and
// leaves the document unchanged when name is already registered.
func (m *Manifest) AppendMember(name string) (bool, error) {
	members, err := m.Members()
	if err != nil {
		return false, err
	}
	if slices.Contains(members, name) {
		return false, nil
	}

	raw, _ := m.rawMembers()
	ws := m.doc["workspace"].(map[string]any)
	ws["members"] = append(raw, name)
	return true, nil
}

// Save rewrites the whole manifest from the in-memory document.
func (m *Manifest) Save() error {
	data, err := toml.Marshal(m.doc)
	if err != nil {
		return &ManifestError{Path: m.path, Message: "failed to encode TOML", Cause: err}
	}
	if err := writeFileAtomic(m.path, data, m.perm); err != nil {
		return &ManifestError{Path: m.path, Message: "failed to write manifest", Cause: err}
	}
	return nil
}

// Restore writes back the exact bytes the manifest was loaded from.
func (m *Manifest) Restore() error {
	if err := writeFileAtomic(m.path, m.original, m.perm); err != nil {
		return &ManifestError{Path: m.path, Message: "failed to restore manifest", Cause: err}
	}
	return nil
}

func (m *Manifest) rawMembers() ([]any, error) {
	ws, ok := m.doc["workspace"].(map[string]any)
	if !ok {
		return nil, &ManifestError{Path: m.path, Message: "missing [workspace] table"}
	}
	v, ok := ws["members"]
	if !ok {
		return nil, &ManifestError{Path: m.path, Message: "missing workspace.members"}
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, &ManifestError{Path: m.path, Message: fmt.Sprintf("workspace.members is %T, expected an array", v)}
	}
	return raw, nil
}
