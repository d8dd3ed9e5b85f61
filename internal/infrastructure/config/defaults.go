package config

// DefaultSettings returns the settings used for any value a config file omits
func DefaultSettings() *Settings {
	return &Settings{
		Display: DisplayConfig{
			Width:     960,
			Height:    640,
			Resizable: true,
		},
		Loop: LoopConfig{
			TPS:      60,
			MaxDelta: 1 / 29.9,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Storage: StorageConfig{
			Path: "~/.webgames/recordings.db",
		},
		Remote: RemoteConfig{
			Addr:      "127.0.0.1:8090",
			Path:      "/ws",
			ReadLimit: 4096,
		},
	}
}
