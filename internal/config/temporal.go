package config

// TemporalConfig overrides the SDK environment defaults in worker mode.
type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	Queue     string `mapstructure:"queue"`
	TLS       bool   `mapstructure:"tls"`
}
