package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/launchsoft/slackmirror/internal/daemon"
	"github.com/launchsoft/slackmirror/internal/session"
	"go.uber.org/fx"
)

func main() {
	workspaceFlag := flag.String("workspace", "", "workspace name (overrides config default)")
	configFlag := flag.String("config", "", "config file path (default ~/.slackmirror/config.toml)")
	flag.Parse()

	workspace := session.Resolve(*workspaceFlag)
	if err := session.ValidateName(workspace); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := fx.New(
		daemon.Module(daemon.Params{Workspace: workspace, ConfigPath: *configFlag}),
	)

	app.Run()
}
