package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Create a note",
		Long:  "Create a note. Content can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("title", "t", "", "Title (required)")
	cmd.Flags().StringP("color", "c", string(model.ColorPurple), "Folder colour: purple, blue, green, yellow, orange, pink, red")

	cmd.MarkFlagRequired("title")

	RootCmd.AddCommand(cmd)
}

// readContent takes content from args, then from piped stdin.
func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if stat != nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(b)
	}
	return ""
}

func runAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	colorStr, _ := cmd.Flags().GetString("color")

	color, err := model.ParseFolderColor(colorStr)
	if err != nil {
		exitErr("add", err)
	}
	content := readContent(args)
	if strings.TrimSpace(content) == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	nb := openNotebook(cmd)
	defer nb.Close()

	n, err := nb.CreateNote(cmd.Context(), title, content, color)
	checkErr(cmd, "add", err)
	emitNote(cmd, n)
}
