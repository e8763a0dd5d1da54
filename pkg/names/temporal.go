package names

const (
	// Workflows
	WorkflowNameBackupRun = "backup-run"
	WorkflowNameBackupJob = "backup-job"

	// Activity Names, equal to the method names on activities.Activities
	ActivityNameDiscoverSpecs = "DiscoverSpecsActivity"
	ActivityNameLoadSpecs     = "LoadSpecsActivity"
	ActivityNameHookRun       = "HookRunActivity"
	ActivityNameHelperRun     = "HelperRunActivity"

	// Application error types
	ErrorTypeSpecification = "SpecificationError"
	ErrorTypeHelperFailure = "HelperFailure"
	ErrorTypeUnsupported   = "UnsupportedJobType"
)
