package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{EnvDBURL, EnvSAILibraryPath, EnvLogLevel, EnvLogFormat, EnvMetricsAddr, EnvSwitchID} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBURL != DefaultDBURL {
		t.Errorf("DBURL = %q, want %q", cfg.DBURL, DefaultDBURL)
	}
	if cfg.SAILibraryPath != DefaultSAILibraryPath {
		t.Errorf("SAILibraryPath = %q, want %q", cfg.SAILibraryPath, DefaultSAILibraryPath)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.SwitchID != DefaultSwitchID {
		t.Errorf("SwitchID = %q, want %q", cfg.SwitchID, DefaultSwitchID)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvDBURL, "redis://10.0.0.1:6380")
	t.Setenv(EnvSwitchID, "0xdeadbeef")

	cfg := Load()
	if cfg.DBURL != "redis://10.0.0.1:6380" {
		t.Errorf("DBURL = %q, want override", cfg.DBURL)
	}
	if cfg.SwitchID != "0xdeadbeef" {
		t.Errorf("SwitchID = %q, want override", cfg.SwitchID)
	}
}
