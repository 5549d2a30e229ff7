package session

import "github.com/launchsoft/slackmirror/internal/config"

const DefaultWorkspaceName = "main"

// Resolve determines the active workspace name using precedence:
// 1. flagOverride (--workspace flag)
// 2. config.toml default_workspace
// 3. "main"
func Resolve(flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	cfg, err := config.Load(ConfigPath())
	if err == nil && cfg.DefaultWorkspace != "" {
		return cfg.DefaultWorkspace
	}
	return DefaultWorkspaceName
}
