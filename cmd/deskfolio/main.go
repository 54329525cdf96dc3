// Package main implements deskfolio, a portfolio presented as a small
// desktop: windows, a dock, a menu bar and a tabbed browser, in the terminal,
// over SSH or in a web browser.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"
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
	debugMode         bool
	asciiOnly         bool
	themeName         string
	listThemes        bool
	borderStyle       string
	dockbarPosition   string
	hideWindowButtons bool
	hideClock         bool
	noIcons           bool
	noAnimations      bool
	noStats           bool
	configPath        string
	catalogPath       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskfolio",
		Short: "A portfolio desktop for the terminal",
		Long: `deskfolio - a portfolio desktop for the terminal

Browse projects, experience and contact details through a small desktop:
draggable windows, a dock, a menu bar with a control center, and a tabbed
browser for outside links.`,
		Example: `  # Run deskfolio
  deskfolio

  # Use your own portfolio
  deskfolio --catalog me.yaml

  # Run with a specific theme
  deskfolio --theme dracula

  # List all available themes
  deskfolio --list-themes

  # Serve over SSH
  deskfolio ssh --port 2222

  # Serve in the browser
  deskfolio web --port 7681

  # List all keybindings
  deskfolio keybinds list`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				if err := theme.Initialize("default", ""); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write a debug log under the state directory")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode symbols")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty for the built-in palette")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&dockbarPosition, "dockbar-position", "", "Dockbar position: bottom, hidden (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, maximize, close)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the menu bar clock")
	rootCmd.PersistentFlags().BoolVar(&noIcons, "no-icons", false, "Hide the desktop project icons")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable UI animations for instant transitions")
	rootCmd.PersistentFlags().BoolVar(&noStats, "no-stats", false, "Hide host CPU and memory in the menu bar")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: $XDG_CONFIG_HOME/deskfolio/config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Portfolio YAML file (default: built-in)")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve deskfolio over SSH",
		Long: `Serve deskfolio over SSH

Every connection gets its own desktop. The server generates a host key
automatically if one is not specified. Preferences changed over SSH last
for the session only.`,
		Example: `  # Start SSH server on default port
  deskfolio ssh

  # Start on custom port and listen on all interfaces
  deskfolio ssh --host 0.0.0.0 --port 2222

  # Specify custom host key
  deskfolio ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", config.DefaultSSHPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", config.DefaultSSHHost, "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var webPort, webHost string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve deskfolio in the browser",
		Long: `Serve deskfolio through a web terminal

Each browser tab gets its own desktop.`,
		Example: `  # Serve on the default port
  deskfolio web

  # Serve on all interfaces
  deskfolio web --host 0.0.0.0 --port 8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webHost, webPort)
		},
	}

	webCmd.Flags().StringVar(&webPort, "port", config.DefaultWebPort, "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", config.DefaultSSHHost, "Web server host")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deskfolio configuration",
		Long:  `Manage deskfolio configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the deskfolio configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the deskfolio configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var assumeYes bool

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the deskfolio configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(assumeYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Long:  `Load the configuration file and report errors and warnings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return validateConfigFile()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect deskfolio keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List portfolio projects",
		Long: `List the projects in the portfolio catalog

Uses the built-in catalog unless --catalog is given.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listProjects()
		},
	}

	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect saved preferences",
		Long:  `Show or reset the font size and dark mode saved by the control center`,
	}

	prefsShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print saved preferences",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showPrefs()
		},
	}

	var prefsYes bool

	prefsResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset preferences to defaults",
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetPrefs(prefsYes)
		},
	}
	prefsResetCmd.Flags().BoolVarP(&prefsYes, "yes", "y", false, "Skip the confirmation prompt")

	prefsCmd.AddCommand(prefsShowCmd, prefsResetCmd)

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, projectsCmd, prefsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
