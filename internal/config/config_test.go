package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Config{Stage: StageDev, Port: "9191", SnapshotPath: "a", ResultsPath: "b"}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "prod", modify: func(c *Config) { c.Stage = StageProd }},
		{name: "bad stage", modify: func(c *Config) { c.Stage = "staging" }, wantErr: true},
		{name: "port not a number", modify: func(c *Config) { c.Port = "http" }, wantErr: true},
		{name: "port out of range", modify: func(c *Config) { c.Port = "70000" }, wantErr: true},
		{name: "no snapshot path", modify: func(c *Config) { c.SnapshotPath = "" }, wantErr: true},
		{
			name: "database replaces paths",
			modify: func(c *Config) {
				c.SnapshotPath, c.ResultsPath = "", ""
				c.DatabaseUrl = "postgres://localhost/naval_battle"
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := valid
			test.modify(&c)
			if err := c.Validate(); (err != nil) != test.wantErr {
				t.Fatalf("wantErr %t, got %v", test.wantErr, err)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("NAVAL_BATTLE_TEST_VAR=loaded\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("NAVAL_BATTLE_TEST_VAR") })

	if err := LoadEnvFile(StageProd, path); err != nil {
		t.Fatal(err)
	}
	if os.Getenv("NAVAL_BATTLE_TEST_VAR") != "" {
		t.Fatal("env file loaded in prod")
	}

	if err := LoadEnvFile(StageDev, path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("NAVAL_BATTLE_TEST_VAR"); got != "loaded" {
		t.Fatalf("expected loaded, got %q", got)
	}

	if err := LoadEnvFile(StageDev, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}
}
