// Package main implements tilecols, a terminal workspace of resizable
// columns holding stacked windows. Columns and windows are created from
// header menus or keybindings, resized by dragging their handles, and
// rearranged by dragging windows between columns.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/tilecols/internal/config"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode bool

	minSizeFlag    float64
	splitRatioFlag float64
	themeFlag      string
	asciiFlag      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tilecols",
		Short: "Resizable columns of windows in the terminal",
		Long: `tilecols - columns and windows for the terminal

Arrange windows in resizable columns. Drag a column or window handle to
resize it, drag a window handle into another column to move it, and use
the header menus or keybindings to add and remove columns and windows.`,
		Example: `  # Run tilecols
  tilecols

  # Run with debug logging and invariant checks
  tilecols --debug

  # Larger minimum size and a theme
  tilecols --min-size 96 --theme dracula

  # Serve over SSH
  tilecols ssh --port 2222

  # Edit configuration
  tilecols config edit

  # List all keybindings
  tilecols keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context(), overridesFrom(cmd))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging and layout invariant checks")
	rootCmd.PersistentFlags().Float64Var(&minSizeFlag, "min-size", config.DefaultMinSize, "Minimum column width and window height in virtual pixels")
	rootCmd.PersistentFlags().Float64Var(&splitRatioFlag, "split-ratio", config.DefaultSplitRatio, "Fraction of the last column or window taken by a new one")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "bubbletint theme ID")
	rootCmd.PersistentFlags().BoolVar(&asciiFlag, "ascii", false, "Draw handles and borders with ASCII only")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run tilecols as SSH server",
		Long: `Run tilecols as an SSH server

Every connection gets its own layout. The server generates a host key
automatically if none exists.`,
		Example: `  # Start SSH server on default port
  tilecols ssh

  # Listen on all interfaces
  tilecols ssh --host 0.0.0.0 --port 2222

  # Specify custom host key
  tilecols ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath, overridesFrom(cmd))
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (default ~/.ssh/tilecols_host_key)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tilecols configuration",
		Long:  `Manage the tilecols configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tilecols configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running tilecols picks
up saved changes automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tilecols configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	rootCmd.AddCommand(sshCmd, configCmd, keybindsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		stop()
		os.Exit(1)
	}
}

// overridesFrom collects the flags the user actually set.
func overridesFrom(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("min-size") {
		o.MinSize = &minSizeFlag
	}
	if flags.Changed("split-ratio") {
		o.SplitRatio = &splitRatioFlag
	}
	if flags.Changed("theme") {
		o.Theme = &themeFlag
	}
	if flags.Changed("ascii") {
		o.ASCIIOnly = &asciiFlag
	}
	return o
}
