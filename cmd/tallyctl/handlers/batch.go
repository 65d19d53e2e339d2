package handlers

import (
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/cmd/tallyctl/client"
	"github.com/tally-dev/tally/cmd/tallyctl/config"
	"github.com/tally-dev/tally/cmd/tallyctl/display"
	"github.com/tally-dev/tally/cmd/tallyctl/utils"
	"github.com/tally-dev/tally/internal/batchfile"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/review"
)

// loadBatch reads a batch file into a fresh review store with every row
// marked as a submission candidate.
func loadBatch(path string) (*review.Store, error) {
	file, err := batchfile.Load(path)
	if err != nil {
		return nil, err
	}
	store := review.NewStore(nil)
	if err := file.Populate(store); err != nil {
		return nil, err
	}
	return store, nil
}

// HandleReview handles the review subcommand: one round trip with commit
// intent off. The endpoint annotates every submitted transaction and the
// annotated batch is displayed; nothing is committed and no rows are removed
// unless the endpoint reports them committed.
func HandleReview(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	store, err := loadBatch(args[0])
	if err != nil {
		return err
	}

	logging.Info("Submitting batch for review to endpoint: %s", config.Global.Endpoint)
	submitter := review.NewSubmitter(store, client.CreateAPIClient())
	result, err := submitter.Submit(cmd.Context(), config.Review.Sections, false)
	if result == nil {
		return err
	}

	display.DisplayBatch(store)
	if err != nil {
		return err
	}
	logging.Success("Reviewed %d transactions: %d annotated, %d removed",
		result.Submitted, result.Updated, result.Removed)
	return nil
}

// HandleCommit handles the commit subcommand. By default it runs a review
// round first so the commit round only carries rows the endpoint cleared:
// suggest-skip rows drop out unless --force-skip re-marks them (which sets
// do_not_skip on the wire), and discarded rows can never come back. With
// --no-review the batch goes straight to the commit round.
func HandleCommit(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	store, err := loadBatch(args[0])
	if err != nil {
		return err
	}

	submitter := review.NewSubmitter(store, client.CreateAPIClient())
	sections := config.Commit.Sections
	if len(sections) == 0 {
		sections = store.Sections()
	}

	if !config.Commit.NoReview {
		logging.Info("Running review round against endpoint: %s", config.Global.Endpoint)
		reviewResult, err := submitter.Submit(cmd.Context(), sections, false)
		if reviewResult == nil {
			return err
		}
		if err != nil {
			// Unmapped verdicts leave rows untouched; stop rather than
			// commit a batch whose annotations are incomplete.
			display.DisplayBatch(store)
			return err
		}
		logging.Info("Review round: %d submitted, %d annotated", reviewResult.Submitted, reviewResult.Updated)

		if config.Commit.ForceSkip {
			for _, section := range sections {
				overridden, err := store.OverrideSkips(section)
				if err != nil {
					return err
				}
				if overridden > 0 {
					logging.Warn("Overriding %d suggest-skip verdicts in section %q", overridden, section)
				}
			}
		}
	}

	logging.Info("Running commit round against endpoint: %s", config.Global.Endpoint)
	result, err := submitter.Submit(cmd.Context(), sections, true)
	if result == nil {
		return err
	}

	display.DisplayCommitResult(result, store)
	if err != nil {
		return err
	}
	logging.Success("Committed %d of %d submitted transactions (%d remaining in batch)",
		result.Committed, result.Submitted, store.Len())
	return nil
}
