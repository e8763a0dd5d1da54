package config

type PathConfig struct {
	Helper string `mapstructure:"helper"`
	MCRcon string `mapstructure:"mcrcon"`
}
