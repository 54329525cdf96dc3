package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/huh"
)

// stdout downsamples colors to whatever the terminal supports.
func stdout() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func printConfigPath() error {
	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor checks $EDITOR, $VISUAL and then a few common editors.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, nil
		}
	}
	for _, editor := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR")
}

func editConfigFile() error {
	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(editor)
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}

	if _, err := config.LoadUserConfigFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// confirm asks a yes/no question. It defaults to no.
func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Reset").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func resetConfigToDefaults(assumeYes bool) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if !assumeYes {
		ok, err := confirm("Reset configuration?", "This overwrites "+path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

func validateConfigFile() error {
	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := config.LoadUserConfigFile(path); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}

func cliTable() *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
}

func sectionTitle(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Render(title)
}

func listKeybindings() error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	registry := config.NewKeybindRegistry(userConfig)

	w := stdout()
	for _, section := range config.GetKeybindings(registry) {
		t := cliTable().Headers("KEY", "ACTION")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		_, _ = fmt.Fprintln(w, sectionTitle(section.Title))
		_, _ = fmt.Fprintln(w, t.Render())
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

func listCustomKeybindings() error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	custom := config.NewKeybindRegistry(userConfig)
	defaults := config.NewKeybindRegistry(config.DefaultConfig())

	t := cliTable().Headers("ACTION", "DEFAULT", "CUSTOM")
	changed := 0
	for _, action := range config.AllActions() {
		def, cur := defaults.GetKeysForDisplay(action), custom.GetKeysForDisplay(action)
		if def == cur {
			continue
		}
		if cur == "" {
			cur = lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render("(unbound)")
		}
		t.Row(config.ActionDescription(action), def, cur)
		changed++
	}

	if changed == 0 {
		fmt.Println("No custom keybindings.")
		return nil
	}
	_, _ = fmt.Fprintln(stdout(), t.Render())
	return nil
}

func listProjects() error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	t := cliTable().Headers("ID", "NAME", "KIND", "STATUS", "STACK")
	for _, p := range cat.Projects {
		t.Row(p.ID, p.Name, p.Kind, p.Status, strings.Join(p.Stack, ", "))
	}
	_, _ = fmt.Fprintln(stdout(), t.Render())
	return nil
}

// withPrefs opens the preferences database for a one-shot command.
func withPrefs(fn func(svc *prefs.Service, path string) error) error {
	ctx := context.Background()
	path, err := prefs.DefaultPath()
	if err != nil {
		return fmt.Errorf("prefs path: %w", err)
	}
	svc, closeStore, err := openPrefs(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(svc, path)
}

func showPrefs() error {
	return withPrefs(func(svc *prefs.Service, path string) error {
		p := svc.Current()
		dark := "off"
		if p.DarkMode {
			dark = "on"
		}
		t := cliTable().Headers("SETTING", "VALUE").
			Row("font size", fmt.Sprintf("%dpx", p.FontSize)).
			Row("dark mode", dark)
		w := stdout()
		_, _ = fmt.Fprintln(w, t.Render())
		_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render(path))
		return nil
	})
}

func resetPrefs(assumeYes bool) error {
	if !assumeYes {
		ok, err := confirm("Reset preferences?", "Font size and dark mode go back to their defaults.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	return withPrefs(func(svc *prefs.Service, _ string) error {
		p, err := svc.Reset()
		if err != nil {
			return fmt.Errorf("reset prefs: %w", err)
		}
		fmt.Printf("Preferences reset: font %dpx, dark mode %t\n", p.FontSize, p.DarkMode)
		return nil
	})
}
