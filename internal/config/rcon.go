package config

// RconConfig holds the connection settings handed to the remote-console client.
type RconConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
}
