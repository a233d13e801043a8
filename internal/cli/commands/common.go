// Package commands holds the cobra subcommands of the mangiato CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/nonibytes/mangiato/internal/cliopt"
	"github.com/nonibytes/mangiato/internal/cliutil"
	"github.com/nonibytes/mangiato/mangiato"
)

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}

func printerFor(cmd *cobra.Command) *cliutil.Printer {
	return cliutil.NewPrinter(outputFormat(cmd), cmd.OutOrStdout())
}

// storeFromCmd resolves the global flags and opens the store. The caller
// closes it.
func storeFromCmd(cmd *cobra.Command, create bool) (*mangiato.Store, error) {
	g, err := cliopt.FromFlags(cmd.Flags(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return g.OpenStore(cmd.Context(), create)
}

// withStore runs fn against an opened store and closes it afterwards.
func withStore(cmd *cobra.Command, fn func(st *mangiato.Store) error) error {
	st, err := storeFromCmd(cmd, false)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// addListFlags registers the paging flags shared by the list commands.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("per-page", 10, "items per page")
	cmd.Flags().String("sort", "", "comma-separated sort fields, prefix with - for descending")
	cmd.Flags().StringP("search", "s", "", "filter expression, e.g. \"date eq '2019-02-01' and calories gt 500\"")
}

func listOptions(cmd *cobra.Command) mangiato.ListOptions {
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	sort, _ := cmd.Flags().GetString("sort")
	search, _ := cmd.Flags().GetString("search")
	return mangiato.ListOptions{Page: page, PerPage: perPage, Sort: sort, Search: search}
}

func pageLine(p *cliutil.Printer, info mangiato.PageInfo) {
	p.Line("\npage %d of %d, %d total", info.Page, info.Pages, info.Total)
}
