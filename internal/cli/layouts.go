package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/teamtab/internal/core"
)

func layoutsCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the column layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tVARIANT\tCOLUMNS")
			for _, layout := range core.Layouts() {
				key := layout.Key
				if key == root.cfg.Export.DefaultLayout {
					key += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", key, layout.Variant, strings.Join(layout.Header(), ", "))
			}
			return tw.Flush()
		},
	}
}
