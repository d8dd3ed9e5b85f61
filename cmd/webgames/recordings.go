package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/webgames/internal/infrastructure/storage"
)

var (
	flagListVariant string
	flagListLimit   int
	flagDeleteID    int64
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List stored recordings",
	Long: `List recordings stored by 'webgames play --record', newest first.

Examples:
  webgames recordings
  webgames recordings --variant factory --limit 5
  webgames recordings --delete 3`,
	Args: cobra.NoArgs,
	RunE: runRecordings,
}

func init() {
	recordingsCmd.Flags().StringVar(&flagListVariant, "variant", "", "Only list recordings of this variant")
	recordingsCmd.Flags().IntVar(&flagListLimit, "limit", 20, "Maximum number of recordings to list")
	recordingsCmd.Flags().Int64Var(&flagDeleteID, "delete", 0, "Delete the recording with this id")
}

func runRecordings(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := storage.Open(a.dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDeleteID != 0 {
		if err := store.DeleteRecording(flagDeleteID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted recording %d\n", flagDeleteID)
		return nil
	}

	entries, err := store.ListRecordings(flagListVariant, flagListLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderRecordings(entries))
	return nil
}
