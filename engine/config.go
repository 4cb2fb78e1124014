package engine

// Config of the execution engine.
type Config struct {
	// RegistryCacheSize is the number of account registries kept in memory.
	RegistryCacheSize int `mapstructure:"registry-cache-size"`
}

// DefaultConfig returns default engine config.
func DefaultConfig() Config {
	return Config{
		RegistryCacheSize: 1024,
	}
}
