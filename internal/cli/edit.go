package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id> [content]",
		Short: "Edit a note",
		Long:  "Change a note's title, content or colour. Only the fields given are changed.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().StringP("title", "t", "", "New title")
	cmd.Flags().StringP("color", "c", "", "New folder colour")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	id := args[0]
	var patch model.NotePatch

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		patch.Title = &title
	}
	if cmd.Flags().Changed("color") {
		s, _ := cmd.Flags().GetString("color")
		color, err := model.ParseFolderColor(s)
		if err != nil {
			exitErr("edit", err)
		}
		patch.FolderColor = &color
	}
	if content := readContent(args[1:]); content != "" {
		patch.Content = &content
	}
	if patch.Empty() {
		exitErr("edit", fmt.Errorf("nothing to change: pass --title, --color or content"))
	}

	nb := openNotebook(cmd)
	defer nb.Close()

	n, err := nb.UpdateNote(cmd.Context(), id, patch)
	if missing(cmd, "edit", id, err) {
		return
	}
	checkErr(cmd, "edit", err)
	emitNote(cmd, n)
}
