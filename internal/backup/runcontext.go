package backup

import "wither/internal/job"

// Installation locates the wither install that external programs belong to
type Installation struct {
	RootDir string
	LibDir  string
}

// RunContext is the job information handed to hooks and the helper. It is
// passed per invocation; the wither process environment is never modified.
type RunContext struct {
	Type       job.Type `json:"type"`
	Path       string   `json:"path"`
	Identifier string   `json:"identifier"`
}

func NewRunContext(j *job.Job) RunContext {
	return RunContext{Type: j.Type, Path: j.Path, Identifier: j.Identifier}
}

// Environ renders the run context as the environment variables external
// hook and helper programs read.
func (rc RunContext) Environ(inst Installation) []string {
	env := []string{
		"BACKUP_TYPE=" + rc.Type.String(),
		"BACKUP_PATH=" + rc.Path,
		"BACKUP_IDENTIFIER=" + rc.Identifier,
	}
	if inst.RootDir != "" {
		env = append(env, "ROOT_DIR="+inst.RootDir)
	}
	if inst.LibDir != "" {
		env = append(env, "LIB_DIR="+inst.LibDir)
	}
	return env
}
