package main

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var flagSelect string

func init() {
	inspectCmd.Flags().StringVar(&flagSelect, "select", "", "JSONPath filter over the dumped table")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the constructed resolver table as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		mappings := map[string]any{}
		for real, vp := range table.Mappings() {
			mappings[real] = []string(vp)
		}
		var partitions []map[string]any
		for _, part := range table.Partitions() {
			var globs []string
			for _, rule := range part.Scope {
				globs = append(globs, rule.Pattern)
			}
			partitions = append(partitions, map[string]any{
				"realPath": part.RealPath,
				"prefix":   []string(part.Prefix),
				"ignores":  globs,
			})
		}
		dump := map[string]any{
			"name":       table.Name(),
			"isGame":     table.IsGame(),
			"mappings":   mappings,
			"partitions": partitions,
			"warnings":   table.Warnings(),
		}

		if flagSelect == "" {
			fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(dump, 2))
			return nil
		}
		expr, err := jp.ParseString(flagSelect)
		if err != nil {
			return fmt.Errorf("invalid jsonpath %q: %w", flagSelect, err)
		}
		results := expr.Get(dump)
		sort.Slice(results, func(i, j int) bool {
			return oj.JSON(results[i]) < oj.JSON(results[j])
		})
		fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(results, 2))
		return nil
	},
}
