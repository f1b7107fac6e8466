package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// passthrough builds a cobra command that joins Use plus its raw arguments
// into a single protocol line and sends it verbatim, per spec.md §6's verb
// table. Flag parsing is disabled since several verbs take tokens that look
// like flags (`resize -5y`, `set-color inner #ff8800`).
func passthrough(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := use
			if len(args) > 0 {
				line += " " + strings.Join(args, " ")
			}
			return sendLine(line)
		},
	}
}

func init() {
	for _, c := range []*cobra.Command{
		passthrough("set-workspaces", "Set the workspace count and labels (e.g. 1:dev 2:web)"),
		passthrough("bind", "Bind a keycombo or buttoncombo to a command"),
		passthrough("rule", "Install a placement rule (class=... [workspace=N] [monitor=N] [float=bool])"),
		passthrough("scratch", "Register a scratchpad or toggle one (toggle <name>)"),
		passthrough("set-gap", "Set the tiling gap in pixels"),
		passthrough("set-border", "Set inner/outer border width"),
		passthrough("set-color", "Set inner/outer border color (#rrggbb)"),
		passthrough("bar", "Configure the bar publisher"),
		passthrough("spawn", "Launch a program, optionally with placement hints"),
		passthrough("focus", "Move focus in a direction (left/right/up/down)"),
		passthrough("move", "Move the focused window in a direction"),
		passthrough("resize", "Resize the focused window (+Nx +Ny)"),
		passthrough("float", "Toggle floating for the focused window"),
		passthrough("close", "Close the focused window"),
		passthrough("view", "Switch a monitor to a workspace (ws N)"),
		passthrough("send", "Send the focused window to a workspace (ws N)"),
		passthrough("move-ws", "Move a workspace to a different monitor"),
		passthrough("togglebar", "Toggle bar visibility"),
		passthrough("fullscreen", "Toggle fullscreen for the focused window"),
		passthrough("reload-config", "Reset and replay the configuration script"),
		passthrough("quit", "Shut down the daemon"),
	} {
		rootCmd.AddCommand(c)
	}
}
