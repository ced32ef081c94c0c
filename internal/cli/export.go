package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/teamtab/internal/source"
)

const exportShortDescription = "Flatten a team export file"

const exportLongDescription = `Command "export"

Read a {"value": [...]} team export and write one row per team and role.

Use "-" as FILE to read from stdin. When --roles is given, roles are joined
to their team by parentId and the separate layout is used unless --layout
says otherwise.`

func exportCommand(root *rootCommand) *cobra.Command {
	var (
		roles string
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: exportShortDescription,
		Long:  exportLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := openInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			defer teams.Close()

			src := &source.File{Teams: teams, Layout: out.layout}
			if roles != "" {
				r, err := openInput(cmd.InOrStdin(), roles)
				if err != nil {
					return err
				}
				defer r.Close()
				src.Roles = r
			}

			return root.loadAndWrite(cmd.Context(), cmd, src, &out)
		},
	}

	cmd.Flags().StringVarP(&roles, "roles", "r", "", "role export joined to teams by parentId")
	out.register(cmd)

	return cmd
}

// openInput opens path, or stdin for "-".
func openInput(stdin io.Reader, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
