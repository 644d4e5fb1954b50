package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blocksmith-io/teaserdecor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manages the teaserdecor configuration.

Config file location: ~/.teaserdecor/config.yaml

Subcommands:
  show    display the current configuration
  init    create a default config file
  set     change a config value
  path    print the config file path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: `Displays the configuration as currently applied.

Without a config file the defaults are shown. API keys referenced via
environment variables are displayed masked.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Creates a default config file at ~/.teaserdecor/config.yaml.

Fails if the file already exists; use --force to overwrite it.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a config value",
	Long: `Changes a configuration value.

Supported keys:
  default_provider          alt-text provider (anthropic, openai, gemini, ollama)
  decorate.selector         CSS selector locating teaser block roots
  decorate.page_url         URL of the pages being decorated
  decorate.title_threshold  no-image title size boundary in characters
  alt_text.temperature      LLM temperature (0.0-1.0)
  alt_text.language         alt-text output language (e.g., en, de)

Examples:
  teaserdecor config set default_provider openai
  teaserdecor config set decorate.title_threshold 60`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := config.NewLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "config file: (using defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.OutOrStdout(), "environment:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
		mask bool
	}{
		{"TEASERDECOR_LLM", "enable alt-text generation", false},
		{"TEASERDECOR_PROVIDER", "alt-text provider", false},
		{"TEASERDECOR_MODEL", "alt-text model", false},
		{"ANTHROPIC_API_KEY", "Anthropic API key", true},
		{"OPENAI_API_KEY", "OpenAI API key", true},
		{"GOOGLE_API_KEY", "Google API key", true},
		{"OLLAMA_HOST", "Ollama host", false},
	}

	for _, ev := range envVars {
		value := config.GetEnvOrDefault(ev.key, "")
		if ev.mask {
			value = maskAPIKey(value)
		}
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, value)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("config file already exists: %s\nuse --force to overwrite it", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config file created: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "default_provider":
		validProviders := []string{"anthropic", "openai", "gemini", "ollama"}
		if !contains(validProviders, value) {
			return fmt.Errorf("invalid provider: %s (supported: %s)", value, strings.Join(validProviders, ", "))
		}
		cfg.DefaultProvider = value

	case "decorate.selector":
		if value == "" {
			return fmt.Errorf("selector cannot be empty")
		}
		cfg.Decorate.Selector = value

	case "decorate.page_url":
		cfg.Decorate.PageURL = value

	case "decorate.title_threshold":
		threshold, err := strconv.Atoi(value)
		if err != nil || threshold <= 0 {
			return fmt.Errorf("invalid title threshold: %s (must be a positive integer)", value)
		}
		cfg.Decorate.TitleThreshold = threshold

	case "alt_text.temperature":
		temp, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature: %s", value)
		}
		if temp < 0 || temp > 1 {
			return fmt.Errorf("temperature must be in the range 0.0-1.0: %f", temp)
		}
		cfg.AltText.Temperature = temp

	case "alt_text.language":
		if value == "" {
			return fmt.Errorf("language cannot be empty")
		}
		cfg.AltText.Language = value

	default:
		return fmt.Errorf("unknown config key: %s\nsupported keys: default_provider, decorate.selector, decorate.page_url, decorate.title_threshold, alt_text.temperature, alt_text.language", key)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config updated: %s = %s\n", key, value)
	return nil
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
