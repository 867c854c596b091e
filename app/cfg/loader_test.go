package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadArgs([]string{"status"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Database != "feedbox.db" {
		t.Errorf("Expected default database 'feedbox.db', got: %s", cfg.Database)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected default worker count 5, got: %d", cfg.WorkerCount)
	}
	if cfg.FetchTimeout != 30 {
		t.Errorf("Expected default fetch timeout 30, got: %d", cfg.FetchTimeout)
	}
	if cfg.RefreshInterval != 900 {
		t.Errorf("Expected default refresh interval 900, got: %d", cfg.RefreshInterval)
	}
	if cfg.UserAgent != "feedbox/1.0" {
		t.Errorf("Expected default user agent 'feedbox/1.0', got: %s", cfg.UserAgent)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port '8080', got: %s", cfg.Port)
	}
	if cfg.Verbose {
		t.Error("Expected verbose to default to false")
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := loadArgs([]string{"-d", "/tmp/other.db", "--worker-count", "2", "-v", "status"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Database != "/tmp/other.db" {
		t.Errorf("Expected database '/tmp/other.db', got: %s", cfg.Database)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got: %d", cfg.WorkerCount)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose to be set")
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("FEEDBOX_DATABASE", "/tmp/env.db")
	t.Setenv("FEEDBOX_USER_AGENT", "env-agent/2.0")

	cfg, err := loadArgs([]string{"status"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Database != "/tmp/env.db" {
		t.Errorf("Expected database from environment, got: %s", cfg.Database)
	}
	if cfg.UserAgent != "env-agent/2.0" {
		t.Errorf("Expected user agent from environment, got: %s", cfg.UserAgent)
	}
}

func TestLoadLeavesCommandArgs(t *testing.T) {
	cfg, err := loadArgs([]string{"-v", "next", "--category", "news", "--limit", "3"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"next", "--category", "news", "--limit", "3"}
	if len(cfg.Args) != len(want) {
		t.Fatalf("Expected %d command args, got: %d (%v)", len(want), len(cfg.Args), cfg.Args)
	}
	for i, arg := range want {
		if cfg.Args[i] != arg {
			t.Errorf("Expected arg %d to be %q, got: %q", i, arg, cfg.Args[i])
		}
	}
}
