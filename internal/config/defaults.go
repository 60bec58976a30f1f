package config

// GetDefault returns the default configuration.
func GetDefault() *Config {
	return &Config{
		AgeThresholds: AgeThresholds{
			Logs:      30,
			Downloads: 90,
			Temp:      7,
		},
		Apps: AppLimits{
			UnusedAfterDays: 180,
			LargeAppBytes:   2 * 1024 * 1024 * 1024,
		},
		MinFileAge: 24,
		DryRun:     false,
		History: HistoryConfig{
			Keep: 20,
		},
	}
}
