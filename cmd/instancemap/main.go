package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/rbxkit/instancemap"
)

var (
	flagProject string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "instancemap",
	Short:         "Resolve filesystem paths to Rojo instance tree locations",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "project file (default: discovered in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(inspectCmd)
}

// loadTable builds the resolver table from --project, or discovers a
// project file in the working directory, falling back to synthetic-root
// mode over the working directory when none exists.
func loadTable() (*instancemap.Table, error) {
	fsys := osfs.New("/")

	var table *instancemap.Table
	if flagProject == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		slog.Debug("discovering project", "dir", cwd)
		table, err = instancemap.Discover(fsys, filepath.ToSlash(cwd))
		if err != nil {
			return nil, err
		}
	} else {
		abs, err := filepath.Abs(flagProject)
		if err != nil {
			return nil, err
		}
		slog.Debug("loading project", "path", abs)
		table, err = instancemap.Load(fsys, filepath.ToSlash(abs))
		if err != nil {
			return nil, err
		}
	}
	for _, w := range table.Warnings() {
		slog.Warn(w)
	}
	return table, nil
}
