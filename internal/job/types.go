package job

// Type is the kind of backup a job performs
type Type string

const (
	TypeSystem    Type = "system"
	TypeMinecraft Type = "minecraft"
)

func (t Type) String() string { return string(t) }

// Valid reports whether t is one of the known job types
func (t Type) Valid() bool {
	return t == TypeSystem || t == TypeMinecraft
}

// HookName names a hook slot around the backup pipeline
type HookName string

const (
	HookPre  HookName = "pre"
	HookPost HookName = "post"
)

// hookNames is the closed set of hook slots, in execution order
var hookNames = []HookName{HookPre, HookPost}

// Job is a validated backup job specification
type Job struct {
	SpecFile   string              `json:"spec_file"`
	Type       Type                `json:"type"`
	Identifier string              `json:"identifier"`
	Path       string              `json:"path"`
	Daily      bool                `json:"daily"`
	Hourly     bool                `json:"hourly"`
	Hooks      map[HookName]string `json:"hooks"`
}

// Hook returns the executable registered for name, if any
func (j Job) Hook(name HookName) (string, bool) {
	path, ok := j.Hooks[name]
	return path, ok
}
