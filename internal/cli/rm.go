package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/notebook"
	"github.com/rcliao/vibrant-notes/internal/persist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Long:  "Delete a note. Deleting an id that no longer exists only warns.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	if err := removeNote(cmd, nb, args[0]); err != nil {
		exitErr("rm", err)
	}
}

// removeNote deletes id and prints the result. Only errors other than a
// missing note or a failed save are returned.
func removeNote(cmd *cobra.Command, nb *notebook.Notebook, id string) error {
	err := nb.DeleteNote(cmd.Context(), id)
	if missing(cmd, "rm", id, err) {
		return nil
	}
	if err != nil && !errors.Is(err, persist.ErrPersistence) {
		return err
	}
	if err != nil {
		warn(cmd, "rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
	return nil
}
