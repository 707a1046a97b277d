package descriptor

import (
	"fmt"

	"github.com/jakoblorz/go-descriptor/internal/filesystem"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/rotisserie/eris"
	"github.com/tidwall/sjson"
)

// Store reads and writes descriptor files
type Store struct {
	fs   filesystem.FileSystem
	opts []Option
}

// NewStore creates a Store. The options are passed to every Build.
func NewStore(fs filesystem.FileSystem, opts ...Option) *Store {
	return &Store{fs: fs, opts: opts}
}

// FormatOf returns the format of a descriptor file, sniffing the content when
// the extension is not recognised
func (s *Store) FormatOf(path string, data []byte) Format {
	if format, ok := FormatFromPath(path); ok {
		return format
	}
	return Sniff(data)
}

// Read reads and decodes a descriptor file without validating it
func (s *Store) Read(path string) (*Document, Format, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, "", eris.Wrapf(err, "failed to read descriptor %s", path)
	}

	format := s.FormatOf(path, data)
	doc, err := Decode(format, data)
	if err != nil {
		return nil, "", err
	}

	return doc, format, nil
}

// Load reads, decodes and validates a descriptor file
func (s *Store) Load(path string) (*models.Descriptor, error) {
	doc, _, err := s.Read(path)
	if err != nil {
		return nil, err
	}
	return Build(doc, s.buildOptions(path)...)
}

// Write validates a document and writes it in the format implied by path.
// Invalid documents are never written.
func (s *Store) Write(path string, format Format, doc *Document) error {
	if _, err := Build(doc, s.buildOptions(path)...); err != nil {
		return err
	}

	data, err := Encode(format, doc)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "failed to write descriptor %s", path)
	}

	return nil
}

// AddDependency appends an entry to a scope of a descriptor file. The updated
// document is validated before anything is written. JSON files are patched in
// place so their layout survives; other formats are re-encoded.
func (s *Store) AddDependency(path string, scope models.Scope, entry DependencyEntry) (*models.Descriptor, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read descriptor %s", path)
	}

	format := s.FormatOf(path, data)
	doc, err := Decode(format, data)
	if err != nil {
		return nil, err
	}

	field := fmt.Sprintf("dependency.%s[%d]", scope, len(doc.Dependency.Entries(scope)))
	added, err := entry.coordinate(field)
	if err != nil {
		return nil, err
	}

	// an identical redeclaration leaves the file as it is
	if declared(doc, scope, added) {
		return Build(doc, s.buildOptions(path)...)
	}

	doc.Dependency.Append(scope, entry)
	if _, err := Build(doc, s.buildOptions(path)...); err != nil {
		return nil, err
	}

	var updated []byte
	if format == FormatJSON {
		updated, err = sjson.SetBytes(data, "dependency."+scope.String()+".-1", entry)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to update %s", path)
		}
	} else {
		updated, err = Encode(format, doc)
		if err != nil {
			return nil, err
		}
	}

	// what gets written must load back
	result, err := Load(updated, format, s.buildOptions(path)...)
	if err != nil {
		return nil, err
	}

	if err := s.fs.WriteFile(path, updated, 0644); err != nil {
		return nil, eris.Wrapf(err, "failed to write descriptor %s", path)
	}

	return result, nil
}

// declared reports whether scope already holds c with the same version and kind
func declared(doc *Document, scope models.Scope, c models.Coordinate) bool {
	for i, entry := range doc.Dependency.Entries(scope) {
		existing, err := entry.coordinate(fmt.Sprintf("dependency.%s[%d]", scope, i))
		if err != nil {
			continue
		}
		if existing.Key() == c.Key() && existing.Version == c.Version && existing.Kind == c.Kind {
			return true
		}
	}
	return false
}

func (s *Store) buildOptions(path string) []Option {
	return append(append([]Option(nil), s.opts...), WithSource(path))
}
