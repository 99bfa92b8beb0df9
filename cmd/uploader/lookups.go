package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"grantdocs/internal/model"
)

// lookupSource is the part of the API client the lookups command reads.
type lookupSource interface {
	FiscalYears(ctx context.Context) ([]model.FiscalYear, error)
	Sources(ctx context.Context) ([]model.Source, error)
	GrantTypes(ctx context.Context) ([]model.GrantType, error)
}

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "Print the fiscal years, sources and grant types the API accepts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLookups(cmd.Context(), cmd.OutOrStdout(), newClient())
	},
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func printLookups(ctx context.Context, out io.Writer, src lookupSource) error {
	fys, err := src.FiscalYears(ctx)
	if err != nil {
		return fmt.Errorf("fetch fiscal years: %w", err)
	}
	sources, err := src.Sources(ctx)
	if err != nil {
		return fmt.Errorf("fetch sources: %w", err)
	}
	grants, err := src.GrantTypes(ctx)
	if err != nil {
		return fmt.Errorf("fetch grant types: %w", err)
	}

	t := newTable("Fiscal Year", "Name")
	for _, fy := range fys {
		t.Row(fy.ID, fy.Name)
	}
	fmt.Fprintln(out, t.Render())

	t = newTable("ID", "Source")
	for _, s := range sources {
		t.Row(strconv.Itoa(s.ID), s.Name)
	}
	fmt.Fprintln(out, t.Render())

	t = newTable("ID", "Grant Type")
	for _, g := range grants {
		t.Row(strconv.Itoa(g.ID), g.Name)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
