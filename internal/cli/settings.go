package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spinualexandru/clammy/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the current settings, or change one with "set".

Settings live in ~/.config/clammy/settings.yaml. Changes take effect the
next time the bar starts; the running bar does not watch the file.`,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save the file.

Keys:
  tray.icon_theme_path   extra directory probed for named icons
  tray.icon_size         target icon edge in pixels
  appearance.theme       system | light | dark
  appearance.bar_height  bar height in pixels`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	fmt.Println(styleBrand.Render("clammy settings"))
	printSetting("tray.icon_theme_path", settings.Tray.IconThemePath)
	printSetting("tray.icon_size", strconv.Itoa(settings.Tray.IconSize))
	printSetting("appearance.theme", settings.Appearance.Theme)
	printSetting("appearance.bar_height", strconv.Itoa(settings.Appearance.BarHeight))
	return nil
}

func printSetting(key, value string) {
	if value == "" {
		value = styleHint.Render("(unset)")
	} else {
		value = styleValue.Render(value)
	}
	fmt.Printf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-24s", key)), value)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	switch key {
	case "tray.icon_theme_path":
		settings.Tray.IconThemePath = value
	case "tray.icon_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid icon size: %s", value)
		}
		settings.Tray.IconSize = n
	case "appearance.theme":
		if value != "system" && value != "light" && value != "dark" {
			return fmt.Errorf("invalid theme: %s (expected system, light, or dark)", value)
		}
		settings.Appearance.Theme = value
	case "appearance.bar_height":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid bar height: %s", value)
		}
		settings.Appearance.BarHeight = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println(styleSuccess.Render("Settings updated."))
	return nil
}
