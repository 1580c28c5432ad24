package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/persist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import notes from JSON",
		Long:  "Import notes from JSON (stdin or file). Expects the format produced by export. Notes whose id already exists are skipped.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	notes, err := persist.Decode(data)
	if err != nil {
		exitErr("parse json", err)
	}

	nb := openNotebook(cmd)
	defer nb.Close()

	imported, err := nb.Import(cmd.Context(), notes)
	checkErr(cmd, "import", err)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
