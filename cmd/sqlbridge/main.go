// Command sqlbridge executes SQL-shaped statements against a
// resource-API backend through the translation layer.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/config"
	"github.com/sqlbridge/sqlbridge/runtime/client"
)

const version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sqlbridge",
		Short:         "Execute SQL-shaped statements against a REST resource backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(execCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sqlbridge version %s\n", version)
		},
	}
}

func execCmd() *cobra.Command {
	var rawParams []string
	var timeout time.Duration
	var verbose bool

	cmd := &cobra.Command{
		Use:   "exec <statement>",
		Short: "Run one statement and print the resulting rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			pool := client.NewPoolFromConfig(cfg)
			if verbose {
				pool.Use(client.LoggingMiddleware(func(format string, a ...any) {
					fmt.Fprintf(os.Stderr, format+"\n", a...)
				}))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			params := make([]any, len(rawParams))
			for i, raw := range rawParams {
				params[i] = parseParam(raw)
			}

			result, err := pool.Query(ctx, args[0], params...)
			if err != nil {
				return err
			}

			if result.RowCount == 0 {
				fmt.Println("(0 rows)")
				return nil
			}
			if err := renderTable(result.Rows); err != nil {
				return err
			}
			fmt.Printf("(%d rows)\n", result.RowCount)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&rawParams, "param", "p", nil, "positional parameter, repeatable; JSON values are decoded, anything else is a string")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall statement timeout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log statement execution to stderr")
	return cmd
}

// parseParam decodes a flag value: valid JSON (numbers, booleans, null,
// arrays) is taken as-is, anything else is a plain string.
func parseParam(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

func renderTable(rows []map[string]any) error {
	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	data := pterm.TableData{columns}
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, column := range columns {
			line[i] = fmt.Sprint(row[column])
		}
		data = append(data, line)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
