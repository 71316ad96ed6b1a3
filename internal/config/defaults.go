package config

const (
	defaultBackend    = BackendFS
	defaultStoreRoot  = "~/.local/share/thermbat/archive"
	defaultSQLitePath = "~/.local/share/thermbat/archive.db"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Store: Store{
			Backend:    defaultBackend,
			Root:       defaultStoreRoot,
			SQLitePath: defaultSQLitePath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
