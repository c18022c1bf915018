package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/ukaji3/catalogjson-go/pkg/catalog"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
)

var (
	inspectSheet string
	inspectRows  int
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsm]",
		Short: "Show the leading rows of each sheet to locate header and data rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := catalog.Inspect(args[0], catalog.InspectOptions{
				Sheet: inspectSheet,
				Rows:  inspectRows,
			})
			if err != nil {
				return err
			}
			printInspection(cmd.OutOrStdout(), sheets)
			return nil
		},
	}

	cmd.Flags().StringVar(&inspectSheet, "sheet", "", "Inspect only this sheet")
	cmd.Flags().IntVar(&inspectRows, "rows", 5, "Number of leading rows to show")
	return cmd
}

func printInspection(w io.Writer, sheets []catalog.SheetInspection) {
	for _, s := range sheets {
		fmt.Fprintf(w, "Sheet: %s\n", s.Name)
		fmt.Fprintf(w, "  rows: %d  columns: %d", s.RowCount, s.ColumnCount)
		if s.Bounds.Range != "" {
			fmt.Fprintf(w, "  used range: %s (density %.2f)", s.Bounds.Range, s.Bounds.Density)
		}
		fmt.Fprintln(w)
		for i, row := range s.Preview {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = describeCell(v)
			}
			fmt.Fprintf(w, "  row %d: [%s]\n", i+1, strings.Join(cells, ", "))
		}
		fmt.Fprintln(w, strings.Repeat("-", 60))
	}
}

func describeCell(v models.Value) string {
	if v.Kind == models.KindAbsent {
		return "(empty)"
	}
	text := v.Text()
	if utf8.RuneCountInString(text) > 30 {
		text = string([]rune(text)[:30])
	}
	return fmt.Sprintf("%s (%s)", text, v.Kind)
}
