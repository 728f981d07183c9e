package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var flagExpectName string

var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete the record at a zero-based position",
	Long: "Delete the record at the given zero-based position, as shown by list. " +
		"Use --expect-name to refuse the delete if that position now holds a different product.",
	Example: "  scorecard delete 3\n  scorecard delete 3 --expect-name Lamp",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer, got %q", args[0])
		}
		e, err := setup(nil)
		if err != nil {
			return err
		}

		records, err := e.store.Load()
		if err != nil {
			fail(err)
			return nil
		}
		if len(records) == 0 {
			fmt.Fprintln(stdout, "No products to delete.")
			exitCode = ExitRejected
			return nil
		}

		removed, _, err := e.store.Remove(index, flagExpectName)
		if err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintf(stdout, "Product at index %d deleted successfully!\n", index)
		e.logger.Debug("deleted", "name", removed.Name, "total", removed.TotalPoints)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&flagExpectName, "expect-name", "", "Only delete if the record at index has this product name")
}
