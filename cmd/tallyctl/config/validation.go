// Package config handles global flag validation for the tallyctl CLI.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/validate"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := ValidateEndpointAddress(); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return fmt.Errorf("invalid log level '%s' - valid levels are: DEBUG, INFO, WARN, ERROR", Global.LogLevel)
	}

	if Global.Timeout < 1 {
		return fmt.Errorf("timeout must be at least 1 second")
	}

	return nil
}

// ValidateEndpointAddress validates the --endpoint flag
func ValidateEndpointAddress() error {
	if err := validate.ValidateEndpointAddr(Global.Endpoint); err != nil {
		logging.Error("Invalid endpoint address '%s': %v", Global.Endpoint, err)
		return fmt.Errorf("invalid endpoint address - expected format: host:port (e.g., 127.0.0.1:8350)")
	}
	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}
