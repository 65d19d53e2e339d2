// Package config provides configuration validation tests for the Tally
// stub daemon. Tests cover bind address parsing, log level checking, and
// warning threshold parsing across valid and invalid inputs.
package config

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		bind          string
		logLevel      string
		warnThreshold string
		expectError   bool
		errorContains string
		wantAddr      string
		wantPort      int
	}{
		{
			name:          "defaults_ok",
			bind:          DefaultBind,
			logLevel:      DefaultLogLevel,
			warnThreshold: DefaultWarnThreshold,
			expectError:   false,
			wantAddr:      "0.0.0.0",
			wantPort:      8350,
		},
		{
			name:          "explicit_host_and_port_ok",
			bind:          "127.0.0.1:9000",
			logLevel:      "DEBUG",
			warnThreshold: "100.50",
			expectError:   false,
			wantAddr:      "127.0.0.1",
			wantPort:      9000,
		},
		{
			name:          "empty_host_becomes_wildcard",
			bind:          ":8350",
			logLevel:      "INFO",
			warnThreshold: "0",
			expectError:   false,
			wantAddr:      "0.0.0.0",
			wantPort:      8350,
		},
		{
			name:          "missing_port_error",
			bind:          "127.0.0.1",
			logLevel:      "INFO",
			warnThreshold: DefaultWarnThreshold,
			expectError:   true,
			errorContains: "invalid bind address",
		},
		{
			name:          "port_out_of_range_error",
			bind:          "127.0.0.1:99999",
			logLevel:      "INFO",
			warnThreshold: DefaultWarnThreshold,
			expectError:   true,
			errorContains: "invalid bind address",
		},
		{
			name:          "bad_log_level_error",
			bind:          DefaultBind,
			logLevel:      "LOUD",
			warnThreshold: DefaultWarnThreshold,
			expectError:   true,
			errorContains: "invalid log level",
		},
		{
			name:          "non_decimal_threshold_error",
			bind:          DefaultBind,
			logLevel:      "INFO",
			warnThreshold: "lots",
			expectError:   true,
			errorContains: "invalid warn threshold",
		},
		{
			name:          "negative_threshold_error",
			bind:          DefaultBind,
			logLevel:      "INFO",
			warnThreshold: "-1.00",
			expectError:   true,
			errorContains: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Global = Config{
				RawBind:       tt.bind,
				LogLevel:      tt.logLevel,
				WarnThreshold: tt.warnThreshold,
			}

			err := ValidateConfig()
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Global.BindAddr != tt.wantAddr {
				t.Errorf("BindAddr = %q, want %q", Global.BindAddr, tt.wantAddr)
			}
			if Global.BindPort != tt.wantPort {
				t.Errorf("BindPort = %d, want %d", Global.BindPort, tt.wantPort)
			}
			if Global.Threshold.String() == "" {
				t.Errorf("Threshold not populated")
			}
		})
	}
}
