package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// SpecFileName is the specification file looked for in every .backup directory
const SpecFileName = "spec.json"

const (
	hooksDirName = "hooks"
	hookSuffix   = ".hook"
)

// specKeys is the closed schema of a specification file
var specKeys = []string{"type", "identifier", "path", "daily", "hourly"}

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// document is a parsed specification whose values have not been checked yet
type document struct {
	file   string
	fields map[string]json.RawMessage
	hooks  map[HookName]string
}

// Load parses and validates the specification at path. Any problem is
// reported as a *SpecificationError.
func Load(path string) (*Job, error) {
	doc, err := parse(path)
	if err != nil {
		return nil, err
	}
	return doc.validate()
}

// LoadAll loads every specification in order and stops at the first
// invalid one; no partial result is returned.
func LoadAll(paths []string, logger zerolog.Logger) ([]*Job, error) {
	jobs := make([]*Job, 0, len(paths))
	for _, path := range paths {
		logger.Info().Str("spec", path).Msg("Loading job specification")
		j, err := Load(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func parse(file string) (*document, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, specErrorf(file, "", "unable to read specification: %v", err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, col := position(data, syntaxErr.Offset)
			return nil, specErrorf(file, "", "line %d: syntax error near column %d", line, col)
		}
		return nil, specErrorf(file, "", "syntax error: %v", err)
	}
	if _, ok := root.(map[string]any); !ok {
		return nil, specErrorf(file, "", "invalid root object type (expecting object, got %s)", kindOf(root))
	}

	// Walk the keys in file order so the first unknown key is the one reported
	fields := make(map[string]json.RawMessage)
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, specErrorf(file, "", "syntax error: %v", err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, specErrorf(file, "", "syntax error: %v", err)
		}
		key, _ := tok.(string)
		if !slices.Contains(specKeys, key) {
			return nil, specErrorf(file, key, "invalid spec key '%s'", key)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, specErrorf(file, key, "syntax error: %v", err)
		}
		fields[key] = raw
	}

	hooks, err := scanHooks(file)
	if err != nil {
		return nil, err
	}

	return &document{file: file, fields: fields, hooks: hooks}, nil
}

// validate checks the fields in a fixed order and fails on the first problem.
func (d *document) validate() (*Job, error) {
	j := &Job{SpecFile: d.file, Hooks: d.hooks}

	// Job type
	var typ string
	if err := d.decode("type", "string", &typ); err != nil {
		return nil, err
	}
	j.Type = Type(typ)
	if !j.Type.Valid() {
		return nil, specErrorf(d.file, "type", "invalid backup job type '%s' (expecting either '%s' or '%s')", typ, TypeSystem, TypeMinecraft)
	}

	// Job identifier
	if err := d.decode("identifier", "string", &j.Identifier); err != nil {
		return nil, err
	}
	if j.Identifier == "" {
		return nil, specErrorf(d.file, "identifier", "spec variable 'identifier' is empty")
	}
	if !identifierPattern.MatchString(j.Identifier) {
		return nil, specErrorf(d.file, "identifier", "spec variable 'identifier' contains invalid character(s)")
	}

	// Job source directory
	if err := d.decode("path", "string", &j.Path); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(j.Path) {
		return nil, specErrorf(d.file, "path", "backup source directory '%s' isn't an absolute path", j.Path)
	}
	if info, err := os.Stat(j.Path); err != nil || !info.IsDir() {
		return nil, specErrorf(d.file, "path", "backup source directory '%s' doesn't exist", j.Path)
	}

	// Job frequency
	if err := d.decode("daily", "boolean", &j.Daily); err != nil {
		return nil, err
	}
	if err := d.decode("hourly", "boolean", &j.Hourly); err != nil {
		return nil, err
	}

	for _, name := range hookNames {
		path, ok := j.Hooks[name]
		if !ok {
			continue
		}
		if err := checkHook(path); err != nil {
			return nil, specErrorf(d.file, "hooks", "%s hook '%s' %v", name, path, err)
		}
	}

	return j, nil
}

// decode type-checks the raw value of key against want before decoding it into dst
func (d *document) decode(key, want string, dst any) error {
	raw, ok := d.fields[key]
	if !ok {
		return specErrorf(d.file, key, "missing spec variable '%s'", key)
	}
	if got := rawKind(raw); got != want {
		return specErrorf(d.file, key, "invalid type for spec variable '%s' (expecting %s, got %s)", key, want, got)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return specErrorf(d.file, key, "invalid value for spec variable '%s': %v", key, err)
	}
	return nil
}

func rawKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// position converts a byte offset into a 1-based line and column
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := string(data[:offset])
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(before[strings.LastIndex(before, "\n")+1:]) + 1
	if col > 1 {
		col--
	}
	return line, col
}
