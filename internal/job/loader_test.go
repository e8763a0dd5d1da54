package job

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSpec creates <dir>/.backup/spec.json and returns its path
func writeSpec(t *testing.T, dir, content string) string {
	t.Helper()
	specDir := filepath.Join(dir, SpecDirName)
	require.NoError(t, os.MkdirAll(specDir, 0o755))
	path := filepath.Join(specDir, SpecFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeHook creates <spec dir>/hooks/<name> with the given mode
func writeHook(t *testing.T, specFile, name string, mode os.FileMode) string {
	t.Helper()
	hooksDir := filepath.Join(filepath.Dir(specFile), hooksDirName)
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	path := filepath.Join(hooksDir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func specJSON(typ, identifier, path string) string {
	return fmt.Sprintf(`{"type":%q,"identifier":%q,"path":%q,"daily":true,"hourly":false}`, typ, identifier, path)
}

func requireSpecError(t *testing.T, err error) *SpecificationError {
	t.Helper()
	require.Error(t, err)
	var specErr *SpecificationError
	require.True(t, errors.As(err, &specErr), "expected *SpecificationError, got %T: %v", err, err)
	return specErr
}

func TestLoad_MinimalSpec(t *testing.T) {
	dir := t.TempDir()
	source := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("system", "a.b-c_1", source))

	j, err := Load(specFile)
	require.NoError(t, err)

	assert.Equal(t, specFile, j.SpecFile)
	assert.Equal(t, TypeSystem, j.Type)
	assert.Equal(t, "a.b-c_1", j.Identifier)
	assert.Equal(t, source, j.Path)
	assert.True(t, j.Daily)
	assert.False(t, j.Hourly)
	assert.Empty(t, j.Hooks)
}

func TestLoad_MinecraftWithoutHooksDir(t *testing.T) {
	dir := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("minecraft", "survival", t.TempDir()))

	j, err := Load(specFile)
	require.NoError(t, err)
	assert.Equal(t, TypeMinecraft, j.Type)
	assert.NotNil(t, j.Hooks)
	assert.Empty(t, j.Hooks)
}

func TestLoad_Hooks(t *testing.T) {
	dir := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("minecraft", "survival", t.TempDir()))
	pre := writeHook(t, specFile, "pre.hook", 0o755)
	post := writeHook(t, specFile, "post.hook", 0o755)
	writeHook(t, specFile, "README", 0o644)

	j, err := Load(specFile)
	require.NoError(t, err)
	assert.Equal(t, map[HookName]string{HookPre: pre, HookPost: post}, j.Hooks)

	path, ok := j.Hook(HookPre)
	assert.True(t, ok)
	assert.Equal(t, pre, path)
}

func TestLoad_UnknownKeyFailsBeforeOtherChecks(t *testing.T) {
	dir := t.TempDir()
	// path does not exist and the hook is not executable: neither must be reached
	specFile := writeSpec(t, dir, `{"type":"minecraft","identifier":"x","retention":7,"path":"/does/not/exist","daily":true,"hourly":true}`)
	writeHook(t, specFile, "pre.hook", 0o644)

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Equal(t, "retention", specErr.Field)
	assert.Equal(t, specFile+": invalid spec key 'retention'", specErr.Error())
}

func TestLoad_InvalidHookName(t *testing.T) {
	dir := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("minecraft", "survival", t.TempDir()))
	writeHook(t, specFile, "pre.hook", 0o755)
	writeHook(t, specFile, "bogus.hook", 0o755)

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Equal(t, "hooks", specErr.Field)
	assert.Contains(t, specErr.Error(), "invalid hook name 'bogus'")
	assert.Contains(t, specErr.Error(), specFile)
}

func TestLoad_HookNotExecutable(t *testing.T) {
	dir := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("minecraft", "survival", t.TempDir()))
	post := writeHook(t, specFile, "post.hook", 0o644)

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Equal(t, "hooks", specErr.Field)
	assert.Equal(t, fmt.Sprintf("%s: post hook '%s' isn't executable", specFile, post), specErr.Error())
}

func TestLoad_HookNotRegularFile(t *testing.T) {
	dir := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("minecraft", "survival", t.TempDir()))
	hookDir := filepath.Join(filepath.Dir(specFile), hooksDirName, "pre.hook")
	require.NoError(t, os.MkdirAll(hookDir, 0o755))

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Contains(t, specErr.Error(), "doesn't exist or isn't a regular file")
}

func TestLoad_InvalidIdentifier(t *testing.T) {
	for _, identifier := range []string{"has space", "slash/name", "dollar$", "ümlaut", "semi;colon"} {
		t.Run(identifier, func(t *testing.T) {
			dir := t.TempDir()
			specFile := writeSpec(t, dir, specJSON("system", identifier, t.TempDir()))

			_, err := Load(specFile)
			specErr := requireSpecError(t, err)
			assert.Equal(t, "identifier", specErr.Field)
			assert.Contains(t, specErr.Error(), "'identifier'")
		})
	}
}

func TestLoad_EmptyIdentifier(t *testing.T) {
	dir := t.TempDir()
	specFile := writeSpec(t, dir, specJSON("system", "", t.TempDir()))

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Equal(t, "identifier", specErr.Field)
}

func TestLoad_FieldErrors(t *testing.T) {
	source := t.TempDir()
	testCases := []struct {
		name    string
		content string
		field   string
		reason  string
	}{
		{
			name:    "type not a string",
			content: fmt.Sprintf(`{"type":1,"identifier":"x","path":%q,"daily":true,"hourly":true}`, source),
			field:   "type",
			reason:  "invalid type for spec variable 'type' (expecting string, got number)",
		},
		{
			name:    "unknown job type",
			content: fmt.Sprintf(`{"type":"database","identifier":"x","path":%q,"daily":true,"hourly":true}`, source),
			field:   "type",
			reason:  "invalid backup job type 'database' (expecting either 'system' or 'minecraft')",
		},
		{
			name:    "missing type",
			content: fmt.Sprintf(`{"identifier":"x","path":%q,"daily":true,"hourly":true}`, source),
			field:   "type",
			reason:  "missing spec variable 'type'",
		},
		{
			name:    "identifier not a string",
			content: fmt.Sprintf(`{"type":"system","identifier":["x"],"path":%q,"daily":true,"hourly":true}`, source),
			field:   "identifier",
			reason:  "invalid type for spec variable 'identifier' (expecting string, got array)",
		},
		{
			name:    "path missing on disk",
			content: `{"type":"system","identifier":"x","path":"/does/not/exist","daily":true,"hourly":true}`,
			field:   "path",
			reason:  "backup source directory '/does/not/exist' doesn't exist",
		},
		{
			name:    "path relative",
			content: `{"type":"system","identifier":"x","path":"relative/dir","daily":true,"hourly":true}`,
			field:   "path",
			reason:  "backup source directory 'relative/dir' isn't an absolute path",
		},
		{
			name:    "daily not a boolean",
			content: fmt.Sprintf(`{"type":"system","identifier":"x","path":%q,"daily":"yes","hourly":true}`, source),
			field:   "daily",
			reason:  "invalid type for spec variable 'daily' (expecting boolean, got string)",
		},
		{
			name:    "hourly null",
			content: fmt.Sprintf(`{"type":"system","identifier":"x","path":%q,"daily":true,"hourly":null}`, source),
			field:   "hourly",
			reason:  "invalid type for spec variable 'hourly' (expecting boolean, got null)",
		},
		{
			name:    "identifier checked before path",
			content: `{"type":"system","identifier":"bad id","path":"/does/not/exist","daily":1,"hourly":1}`,
			field:   "identifier",
			reason:  "spec variable 'identifier' contains invalid character(s)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			specFile := writeSpec(t, t.TempDir(), tc.content)

			_, err := Load(specFile)
			specErr := requireSpecError(t, err)
			assert.Equal(t, tc.field, specErr.Field)
			assert.Equal(t, tc.reason, specErr.Reason)
			assert.Equal(t, specFile+": "+tc.reason, specErr.Error())
		})
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	specFile := writeSpec(t, t.TempDir(), "{\n  \"type\": \"system\",\n  \"identifier\" \"x\"\n}\n")

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Equal(t, "", specErr.Field)
	assert.Equal(t, specFile+": line 3: syntax error near column 16", specErr.Error())
}

func TestLoad_SyntaxErrorColumnCountsCharacters(t *testing.T) {
	specFile := writeSpec(t, t.TempDir(), `{"identifier": "ééé" "x"}`)

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Equal(t, specFile+": line 1: syntax error near column 22", specErr.Error())
}

func TestLoad_RootNotObject(t *testing.T) {
	specFile := writeSpec(t, t.TempDir(), `["system"]`)

	_, err := Load(specFile)
	specErr := requireSpecError(t, err)
	assert.Contains(t, specErr.Error(), "invalid root object type (expecting object, got array)")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), SpecFileName))
	specErr := requireSpecError(t, err)
	assert.Contains(t, specErr.Reason, "unable to read specification")
}

func TestLoadAll_StopsAtFirstInvalid(t *testing.T) {
	good := writeSpec(t, t.TempDir(), specJSON("system", "first", t.TempDir()))
	bad := writeSpec(t, t.TempDir(), specJSON("system", "second one", t.TempDir()))
	never := writeSpec(t, t.TempDir(), specJSON("system", "third", t.TempDir()))

	jobs, err := LoadAll([]string{good, bad, never}, zerolog.Nop())
	specErr := requireSpecError(t, err)
	assert.Equal(t, bad, specErr.File)
	assert.Nil(t, jobs)

	jobs, err = LoadAll([]string{good, never}, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].Identifier)
	assert.Equal(t, "third", jobs[1].Identifier)
}
