package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/campuskit/campusctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit campusctl configuration",
	Long: `Manage the campusctl configuration stored at ~/.campusctl/config.yaml

Configuration includes:
  • The campus API base URL
  • Logging settings

The CAMPUS_API_URL environment variable and the --api-url flag override
the configured base URL for a single run.

Examples:
  # View current configuration
  campusctl config view

  # Get a specific value
  campusctl config get api.base_url

  # Set a specific value
  campusctl config set api.base_url http://campus.example.edu:9099

  # Show configuration file path
  campusctl config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display current configuration",
	RunE:  runConfigView,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  `Retrieve the value of a configuration key using dot notation (e.g., api.base_url).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a specific configuration value",
	Long:  `Set the value of a configuration key using dot notation (e.g., api.base_url http://localhost:9099).`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigView(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Printf("Configuration file: %s\n\n", path)
	fmt.Println(string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := getConfigValue(&cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Read back from disk so a set never persists env or flag overrides
	path, err := config.Path()
	if err != nil {
		return err
	}
	stored, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if err := setConfigValue(&stored, key, value); err != nil {
		return err
	}

	if err := config.Save(stored, path); err != nil {
		return err
	}

	fmt.Printf("✓ Set %s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// getConfigValue retrieves a value from the config using dot notation
func getConfigValue(c *config.Config, key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_seconds":
		return fmt.Sprintf("%d", c.API.TimeoutSeconds), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a value in the config using dot notation
func setConfigValue(c *config.Config, key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("api.timeout_seconds must be a positive number")
		}
		c.API.TimeoutSeconds = n
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
