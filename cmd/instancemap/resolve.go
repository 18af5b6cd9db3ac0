package main

import (
	"fmt"
	"path/filepath"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/rbxkit/instancemap"
)

var flagJSON bool

func init() {
	resolveCmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]...",
	Short: "Map files to their virtual paths, roles, and network class",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		var results []map[string]any
		for _, arg := range args {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return err
			}
			entry := map[string]any{
				"file": arg,
				"role": instancemap.ClassifyRole(abs).String(),
			}
			if vp, ok := table.Resolve(filepath.ToSlash(abs)); ok {
				entry["path"] = []string(vp)
				entry["network"] = table.NetworkType(vp).String()
				entry["isolated"] = table.IsIsolated(vp)
			}
			results = append(results, entry)
		}

		if flagJSON {
			fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(results, 2))
			return nil
		}
		for _, entry := range results {
			if vp, ok := entry["path"]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %v [%s %s]\n",
					entry["file"], vp, entry["role"], entry["network"])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> (no mapping) [%s]\n",
					entry["file"], entry["role"])
			}
		}
		return nil
	},
}
