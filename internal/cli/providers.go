package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blocksmith-io/teaserdecor/internal/alttext"
	"github.com/blocksmith-io/teaserdecor/internal/config"
)

type providerInfo struct {
	Name         string
	DefaultModel string
	EnvKey       string
	Description  string
}

var providers = []providerInfo{
	{
		Name:         "anthropic",
		DefaultModel: alttext.DefaultAnthropicModel,
		EnvKey:       "ANTHROPIC_API_KEY",
		Description:  "Anthropic Claude API",
	},
	{
		Name:         "openai",
		DefaultModel: alttext.DefaultOpenAIModel,
		EnvKey:       "OPENAI_API_KEY",
		Description:  "OpenAI GPT API",
	},
	{
		Name:         "gemini",
		DefaultModel: alttext.DefaultGeminiModel,
		EnvKey:       "GOOGLE_API_KEY",
		Description:  "Google Gemini API",
	},
	{
		Name:         "ollama",
		DefaultModel: "llama3.2",
		EnvKey:       "OLLAMA_HOST",
		Description:  "Local Ollama server (OpenAI-compatible)",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available alt-text providers",
	Long: `Lists the LLM providers available for alt-text generation.

Each provider requires its API key in the corresponding environment
variable (ollama runs locally and needs no key).

Examples:
  teaserdecor decorate page.html --llm --provider anthropic
  teaserdecor decorate page.html --llm --provider openai --model gpt-4o`,
	Run: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "PROVIDER\tDEFAULT MODEL\tENV KEY\tSTATUS\tDESCRIPTION")
	fmt.Fprintln(w, "--------\t-------------\t-------\t------\t-----------")

	for _, p := range providers {
		status := checkProviderStatus(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.DefaultModel, p.EnvKey, status, p.Description)
	}
}

func checkProviderStatus(p providerInfo) string {
	if p.Name == "ollama" {
		// Ollama doesn't require an API key
		return "✓ available"
	}

	if os.Getenv(p.EnvKey) != "" {
		return "✓ configured"
	}
	return "✗ not set"
}

// selectProvider resolves the provider to use from flags, environment and
// config, and returns it with its configuration entry (which may be nil).
func selectProvider(cfg *config.Config) (alttext.Provider, *config.Provider, error) {
	name := decorateProvider
	if name == "" {
		name = os.Getenv("TEASERDECOR_PROVIDER")
	}
	model := decorateModel
	if model == "" {
		model = os.Getenv("TEASERDECOR_MODEL")
	}
	if name == "" && model != "" {
		name = detectProviderFromModel(model)
	}
	if name == "" {
		name = cfg.DefaultProvider
	}

	pcfg, _ := cfg.GetProvider(name)
	apiKey := ""
	endpoint := ""
	if pcfg != nil {
		apiKey = pcfg.APIKey
		endpoint = pcfg.Endpoint
		if model == "" {
			model = pcfg.Model
		}
	}

	switch name {
	case "anthropic":
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		return alttext.NewAnthropicProvider(apiKey, model), pcfg, nil

	case "openai":
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return alttext.NewOpenAIProvider(apiKey, model, endpoint), pcfg, nil

	case "gemini":
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		return alttext.NewGeminiProvider(apiKey, model), pcfg, nil

	case "ollama":
		if endpoint == "" {
			endpoint = config.GetEnvOrDefault("OLLAMA_HOST", "http://localhost:11434") + "/v1"
		}
		// Ollama speaks the OpenAI chat API; the key is a placeholder.
		return alttext.NewOpenAIProvider("ollama", model, endpoint), pcfg, nil

	default:
		return nil, nil, fmt.Errorf("unknown provider: %s (supported: anthropic, openai, gemini, ollama)", name)
	}
}

// detectProviderFromModel infers the provider from a model name. Unknown
// models are routed to the local Ollama server.
func detectProviderFromModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case m == "":
		return "anthropic"
	case strings.HasPrefix(m, "claude"):
		return "anthropic"
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"):
		return "openai"
	case strings.HasPrefix(m, "gemini"):
		return "gemini"
	default:
		return "ollama"
	}
}
