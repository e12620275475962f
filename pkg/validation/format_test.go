package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format    string
		expectErr bool
	}{
		{format: "pretty"},
		{format: "csv"},
		{format: "json"},
		{format: "", expectErr: true},
		{format: "PRETTY", expectErr: true},
		{format: "Json", expectErr: true},
		{format: " csv ", expectErr: true},
		{format: "prettyprint", expectErr: true},
		{format: "yaml", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error = %v", tt.format, err)
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected an error for xml")
	}
	for _, want := range []string{"pretty", "csv", "json", "xml"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err.Error(), want)
		}
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "warning", "error"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) unexpected error = %v", level, err)
		}
	}
	for _, level := range []string{"trace", "INFO", "fatal"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) expected error but got none", level)
		}
	}
}
