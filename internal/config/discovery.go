package config

// DiscoveryConfig controls the filesystem scan for job specifications
type DiscoveryConfig struct {
	Root    string   `mapstructure:"root"`
	Exclude []string `mapstructure:"exclude"` // exact path prefixes, not patterns
	Skip    []string `mapstructure:"skip"`    // directories never descended into
}
