package cmd

import (
	"os"
	"sort"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/server"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the HTTP route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		deps, _, err := buildDeps(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}

		routes := server.New(cfg, deps).Routes()
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path == routes[j].Path {
				return routes[i].Method < routes[j].Method
			}
			return routes[i].Path < routes[j].Path
		})

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Method", "Path", "Handler"})
		for _, r := range routes {
			table.Append([]string{r.Method, r.Path, r.Name})
		}
		table.Render()
		return nil
	},
}
