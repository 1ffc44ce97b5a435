package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:            "http://127.0.0.1:5000",
			TimeoutSeconds: 15,
		},
		Daemon: DaemonConfig{
			Host:            "127.0.0.1",
			Port:            8743,
			EventsPerSecond: 5,
			EventBurst:      10,
		},
		Tracking: TrackingConfig{
			DedupWindowSeconds:  120,
			TitleWordThreshold:  4,
			VideoDomains:        DefaultVideoDomains(),
			SearchEngineDomains: DefaultSearchEngineDomains(),
		},
		Retention: RetentionConfig{
			Days: 30,
		},
		Storage: StorageConfig{
			Path:       "~/.config/readwatch",
			SQLiteFile: "readwatch.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
