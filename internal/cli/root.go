// Package cli implements the notes CLI commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/config"
	"github.com/rcliao/vibrant-notes/internal/logging"
	"github.com/rcliao/vibrant-notes/internal/notebook"
	"github.com/rcliao/vibrant-notes/internal/persist"
	"github.com/rcliao/vibrant-notes/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Colourful notes with day folders and a task board",
	Long:  "A small notes CLI. Notes are grouped by creation day, pinned, searched and moved across a todo / in progress / done board.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Storage path (default: $VIBRANT_NOTES_DB or storage.path from config)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/vibrant-notes/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	} else if env := os.Getenv("VIBRANT_NOTES_DB"); env != "" {
		cfg.Storage.Path = env
	}
	return cfg, nil
}

func openNotebook(cmd *cobra.Command) *notebook.Notebook {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		exitErr("logging", err)
	}
	nb, err := notebook.Open(cmd.Context(), cfg, logger)
	if err != nil {
		exitErr("open notebook", err)
	}
	if w := nb.LoadWarning(); w != nil {
		warn(cmd, "stored notes unreadable, starting over", w)
	}
	return nb
}

// checkErr exits on err unless it only reports a failed save. The change
// still happened in memory, so the caller goes on to print it.
func checkErr(cmd *cobra.Command, msg string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, persist.ErrPersistence) {
		warn(cmd, msg, err)
		return
	}
	exitErr(msg, err)
}

// missing reports whether err says the note id does not exist. Such a command
// is a no-op, not a failure: it warns, prints an ok:false result and exits 0.
func missing(cmd *cobra.Command, msg, id string, err error) bool {
	if !errors.Is(err, store.ErrNotFound) {
		return false
	}
	warn(cmd, msg, err)
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":false,"id":%q,"error":"not found"}`+"\n", id)
	return true
}

func warn(cmd *cobra.Command, msg string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", msg, err)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
