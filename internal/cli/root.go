package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pablasso/fwtask/internal/ctxlog"
	"github.com/pablasso/fwtask/internal/dispatch"
	"github.com/pablasso/fwtask/internal/profile"
	"github.com/pablasso/fwtask/internal/shell"
	"github.com/pablasso/fwtask/internal/version"
	"github.com/spf13/cobra"
)

type options struct {
	profile   string
	file      string
	list      bool
	dryRun    bool
	logLevel  string
	logFormat string
}

// NewRootCmd creates the fwtask command. Command output, task headers and
// listings go to the command's out writer; diagnostics and logs to its err
// writer.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fwtask [task]",
		Short: "Build, test and package the Cortex-M firmware",
		Long: `fwtask runs the firmware's build tasks: cross-compiling for the target triple,
converting the release binary to Intel HEX, running host tests and cleaning.

With no task name the default task (usually "build") runs. Prerequisites run
first, each task at most once, and the first failing command stops everything.`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			set, err := loadTaskSet(cmd.Context(), opts, cmd.Flags().Changed("profile"))
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return set.Registry.Names(), cobra.ShellCompDirectiveNoFileComp
		},
	}
	cmd.SetVersionTemplate(version.String() + "\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.profile, "profile", "p", profile.Default, "Built-in build configuration")
	flags.StringVarP(&opts.file, "file", "f", "", "Task file to load (.hcl, .yaml or .yml)")
	flags.BoolVarP(&opts.list, "list", "T", false, "List tasks with their descriptions and exit")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print commands instead of running them")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Logging level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format: text or json")

	cmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return profile.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	logger, err := newLogger(opts.logLevel, opts.logFormat, stderr)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	if opts.file != "" && cmd.Flags().Changed("profile") {
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("--file and --profile cannot be used together")}
	}

	set, err := loadTaskSet(ctx, opts, cmd.Flags().Changed("profile"))
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	logger.Info("Tasks loaded.", "source", set.Source, "count", set.Registry.Len(), "default", set.DefaultTask)

	if opts.list {
		if len(args) > 0 {
			return &ExitError{
				Code: ExitUsage,
				Err:  fmt.Errorf("--list does not take a task name, got %q", args[0]),
				Hint: "Run 'fwtask --list' without a task to see every task.",
			}
		}
		printTasks(stdout, set)
		return nil
	}

	var exec shell.Executor
	if opts.dryRun {
		exec = &shell.DryRun{Out: stdout}
	} else {
		exec = &shell.Exec{Stdin: cmd.InOrStdin(), Stdout: stdout, Stderr: stderr}
	}

	d := dispatch.New(set.Registry, exec, set.DefaultTask).WithOutput(stdout)
	if len(args) == 0 {
		err = d.RunDefault(ctx)
	} else {
		err = d.Run(ctx, args[0])
	}
	if err != nil {
		return classify(err, set)
	}
	logger.Info("Run finished.", "state", d.State().String())
	return nil
}

// Execute runs the root command against os.Args and prints a diagnostic on
// failure. Use ExitCode to turn the returned error into a process exit code.
func Execute() error {
	return execute(NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(cmd *cobra.Command, args []string, stderr io.Writer) error {
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	if _, ok := err.(*ExitError); !ok {
		// Flag and argument errors from cobra itself.
		err = &ExitError{Code: ExitUsage, Err: err, Hint: "Run 'fwtask --help' for usage."}
	}
	printDiagnostic(stderr, err)
	return err
}
