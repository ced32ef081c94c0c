// Package cli implements the teamtab command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/teamtab/internal/config"
	"github.com/JonMunkholm/teamtab/internal/core"
	_ "github.com/JonMunkholm/teamtab/internal/core/layouts" // Register built-in layouts
	"github.com/JonMunkholm/teamtab/internal/logging"
)

const description = `teamtab flattens team and role exports into spreadsheet rows.

Load a {"value": [...]} export from a file or a remote endpoint and write it
as tab-separated text (ready to paste into a spreadsheet) or as XLSX.
Run "teamtab ui" for the interactive operator page.`

type rootCommand struct {
	cmd     *cobra.Command
	ctx     context.Context
	cfg     *config.Config
	verbose bool
}

// NewRootCommand creates the parent of all sub-commands.
func NewRootCommand(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) *rootCommand {
	root := &rootCommand{ctx: ctx}

	root.cmd = &cobra.Command{
		Use:           "teamtab",
		Short:         "Flatten team and role exports into spreadsheet rows",
		Long:          description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	root.cmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "log debug details to stderr")

	root.cmd.AddCommand(
		exportCommand(root),
		fetchCommand(root),
		layoutsCommand(root),
		uiCommand(root),
	)

	return root
}

// init loads configuration and configures logging once flags are parsed.
func (root *rootCommand) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root.cfg = cfg

	level := cfg.Logging.Level
	if root.verbose {
		level = "debug"
	}
	logging.Setup(root.cmd.ErrOrStderr(), level, cfg.Logging.Format)
	return nil
}

// SetArgs overrides os.Args, used by tests.
func (root *rootCommand) SetArgs(args []string) {
	root.cmd.SetArgs(args)
}

// Execute runs the selected command and returns the process exit code.
func (root *rootCommand) Execute() (exitCode int) {
	if err := root.cmd.ExecuteContext(root.ctx); err != nil {
		root.printError(err)
		return 1
	}
	return 0
}

// printError writes the error and, for known failures, the suggested action.
func (root *rootCommand) printError(err error) {
	out := root.cmd.ErrOrStderr()
	fmt.Fprintf(out, "Error: %s\n", err)

	if core.IsUserFacing(err) {
		fmt.Fprintln(out, core.FormatUserError(err))
	}
}

// newService creates a workspace service from the loaded configuration.
func (root *rootCommand) newService() (*core.Service, error) {
	return core.NewService(root.cfg)
}
