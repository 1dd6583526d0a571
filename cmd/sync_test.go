package cmd

import (
	"testing"
)

func TestNewSyncCmd_Flags(t *testing.T) {
	cmd := newSyncCmd()

	tests := []struct {
		name     string
		defValue string
	}{
		{"interval", "0s"},
		{"once", "false"},
		{"debug", "false"},
		{"metrics-enabled", "true"},
		{"metrics-addr", ":9090"},
	}

	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		if flag == nil {
			t.Errorf("expected flag %q to be registered", tt.name)
			continue
		}
		if flag.DefValue != tt.defValue {
			t.Errorf("flag %q default = %q, want %q", tt.name, flag.DefValue, tt.defValue)
		}
	}
}

func TestRootCmd_DefaultsToSync(t *testing.T) {
	found := false
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "sync" {
			found = true
		}
	}
	if !found {
		t.Error("expected sync subcommand to be registered")
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("rootCmd.Version = %q, want %q", rootCmd.Version, "1.2.3")
	}
	if version != "1.2.3" {
		t.Errorf("version = %q, want %q", version, "1.2.3")
	}
}
