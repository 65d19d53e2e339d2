package handlers

import (
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/cmd/tallyctl/client"
	"github.com/tally-dev/tally/cmd/tallyctl/config"
	"github.com/tally-dev/tally/cmd/tallyctl/display"
	"github.com/tally-dev/tally/cmd/tallyctl/utils"
	"github.com/tally-dev/tally/internal/logging"
)

// HandleHealth handles the health subcommand for checking pipeline endpoint
// reachability before driving a real batch through it.
func HandleHealth(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Checking endpoint health: %s", config.Global.Endpoint)
	apiClient := client.CreateAPIClient()
	health, err := apiClient.Health()
	if err != nil {
		return err
	}

	display.DisplayHealth(health)
	logging.Success("Endpoint %s is %s", config.Global.Endpoint, health.Status)
	return nil
}
