package cli

import (
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/teamtab/internal/source"
)

const fetchShortDescription = "Fetch teams and roles from a remote endpoint"

const fetchLongDescription = `Command "fetch"

Fetch GET {url}/teams, then GET {url}/teams/{id}/roles for every team, and
write one row per team and role.

The endpoint and token default to REMOTE_BASE_URL and REMOTE_TOKEN. A team
whose roles cannot be fetched is written without roles.`

func fetchCommand(root *rootCommand) *cobra.Command {
	var (
		url         string
		token       string
		concurrency int
		retries     int
		out         outputFlags
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: fetchShortDescription,
		Long:  fetchLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := source.RemoteOptionsFromConfig(root.cfg.Remote)
			if url != "" {
				opts.BaseURL = url
			}
			if token != "" {
				opts.Token = token
			}
			if cmd.Flags().Changed("concurrency") {
				opts.MaxConcurrent = concurrency
			}
			if cmd.Flags().Changed("retries") {
				opts.RetryCount = retries
			}
			opts.Layout = out.layout

			src, err := source.NewRemote(opts)
			if err != nil {
				return err
			}
			return root.loadAndWrite(cmd.Context(), cmd, src, &out)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "endpoint base URL (default $REMOTE_BASE_URL)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default $REMOTE_TOKEN)")
	cmd.Flags().IntVar(&concurrency, "concurrency", source.DefaultMaxConcurrent, "parallel role requests")
	cmd.Flags().IntVar(&retries, "retries", 0, "retries for 429 and 5xx responses")
	out.register(cmd)

	return cmd
}
