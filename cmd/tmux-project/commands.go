package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tmux-project/pkg/shellwords"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [project]",
		Short: "Validate a project",
		Long: `Decode and validate a project: the session name, the startup window,
working directories, and every window and pane.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, p, err := opts.loadProject(args)
			if err != nil {
				return err
			}
			if err := p.Check(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				okStyle.Render("✓"),
				name,
				dimStyle.Render(fmt.Sprintf("(%d windows, session %q)", len(p.Windows), *p.SessionName)))
			return nil
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show [project]",
		Short: "Print the resolved project as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := opts.loadProject(args)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(p); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newCommandCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "command [project] [-- tmux-args...]",
		Short: "Print the tmux command line for a project",
		Long: `Print the tmux invocation for a project, with the socket and tmux_options
applied. Arguments after -- are appended verbatim. Every word is shell-quoted,
so the output can be pasted into a shell or a script.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectArgs, extra := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				projectArgs, extra = args[:dash], args[dash:]
			}
			if len(projectArgs) > 1 {
				return fmt.Errorf("expected at most one project name, got %d", len(projectArgs))
			}

			_, p, err := opts.loadProject(projectArgs)
			if err != nil {
				return err
			}

			if len(extra) == 0 {
				line, err := p.InvocationForTemplate()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			}

			program, argv, err := p.Invocation(extra)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shellwords.Join(append([]string{program}, argv...)))
			return nil
		},
	}
}
