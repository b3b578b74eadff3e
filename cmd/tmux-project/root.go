package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tmux-project/pkg/config"
	"tmux-project/pkg/logger"
	"tmux-project/pkg/project"
)

// options holds the persistent flags and the configuration resolved from them.
type options struct {
	configPath  string
	projectsDir string
	file        string
	attach      bool
	detach      bool
	debug       bool

	cfg config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tmux-project",
		Short: "Validate and inspect declarative tmux session projects",
		Long: `tmux-project reads a project file describing a tmux session (windows,
panes, lifecycle hooks, launch options), normalizes it and validates it.

Project files live in the projects directory as <name>.yml, <name>.yaml or
<name>.json, or can be given directly with --file.

Examples:
  tmux-project check blog
  tmux-project show --file ./tmux.yml
  tmux-project command blog -- new-session -d -s blog`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to the global config file (default: "+config.DefaultFilePath()+")")
	pf.StringVar(&opts.projectsDir, "projects-dir", "", "Directory holding project files (overrides config)")
	pf.StringVarP(&opts.file, "file", "f", "", "Load the project from this file instead of the projects directory")
	pf.BoolVar(&opts.attach, "attach", false, "Force attaching after the session is created")
	pf.BoolVar(&opts.detach, "detach", false, "Force leaving the session detached")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newCheckCmd(opts), newShowCmd(opts), newCommandCmd(opts))
	return root
}

func (o *options) setup(cmd *cobra.Command, stderr io.Writer) error {
	if o.attach && o.detach {
		return errors.New("--attach and --detach cannot be used together")
	}

	cfg, err := config.ResolveWithEnv(o.configPath, config.DefaultEnvKeys())
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(o.projectsDir); v != "" {
		cfg.ProjectsDir = v
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = o.debug
	}
	o.cfg = cfg

	logger.SetDebug(cfg.Debug)
	if cfg.LogPath != "" {
		if err := logger.Init(cfg.LogPath); err != nil {
			return err
		}
	} else {
		logger.InitWriter(stderr)
	}

	logger.ComponentLogger("cli").Debug("configuration resolved",
		"projects_dir", cfg.ProjectsDir,
		"tmux_command", cfg.TmuxCommand)
	return nil
}

func (o *options) forceAttach() *bool {
	switch {
	case o.attach:
		v := true
		return &v
	case o.detach:
		v := false
		return &v
	default:
		return nil
	}
}

// loadProject resolves, decodes and prepares the project named by args (or --file).
// It returns the project name alongside the prepared project.
func (o *options) loadProject(args []string) (string, project.Project, error) {
	var name, path string

	switch {
	case o.file != "":
		path = o.file
		name = project.ProjectNameFromPath(path)
		if len(args) > 0 {
			name = args[0]
		}
	case len(args) > 0:
		name = args[0]
		p, err := project.FindProjectFile(o.cfg.ProjectsDir, name)
		if err != nil {
			return "", project.Project{}, err
		}
		path = p
	default:
		return "", project.Project{}, errors.New("a project name or --file is required")
	}

	p, err := project.LoadFile(path)
	if err != nil {
		return "", project.Project{}, err
	}

	logger.ComponentLogger("cli").Debug("loaded project", "name", name, "path", path)
	return name, p.Prepare(o.cfg, name, o.forceAttach()), nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("tmux-project:")+" "+err.Error())
		os.Exit(1)
	}
}
