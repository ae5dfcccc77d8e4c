// ABOUTME: Tests for upload command structure and flags
// ABOUTME: Verifies command metadata and input resolution

package commands

import (
	"testing"
)

func TestNewUploadCmd(t *testing.T) {
	cmd := NewUploadCmd()

	if cmd.Use != "upload [text]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "upload [text]")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestUploadCmd_Flags(t *testing.T) {
	cmd := NewUploadCmd()

	tests := []struct {
		flagName string
		defValue string
	}{
		{"file", ""},
		{"user", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestReadUploadText_InlineArg(t *testing.T) {
	uploadFile = ""
	defer func() { uploadFile = "" }()

	got, err := readUploadText([]string{"glucose slightly elevated"})
	if err != nil {
		t.Fatalf("readUploadText() error = %v", err)
	}
	if got != "glucose slightly elevated" {
		t.Errorf("readUploadText() = %q", got)
	}
}

func TestReadUploadText_MissingFile(t *testing.T) {
	uploadFile = "/nonexistent/report.txt"
	defer func() { uploadFile = "" }()

	if _, err := readUploadText(nil); err == nil {
		t.Error("expected error for missing file")
	}
}
