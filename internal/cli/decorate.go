package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blocksmith-io/teaserdecor/internal/alttext"
	"github.com/blocksmith-io/teaserdecor/internal/browse"
	"github.com/blocksmith-io/teaserdecor/internal/config"
	"github.com/blocksmith-io/teaserdecor/internal/dom"
	"github.com/blocksmith-io/teaserdecor/internal/teaser"
)

var (
	decorateOutput   string
	decorateUseLLM   bool
	decorateProvider string
	decorateModel    string
	decoratePageURL  string
	decorateSelector string
	decorateQuiet    bool
)

var decorateCmd = &cobra.Command{
	Use:   "decorate <file.html>",
	Short: "Decorate every teaser block in an HTML page",
	Long: `Decorates every teaser block in an HTML page and writes the
transformed markup.

By default images without an accessible name receive a generic fallback
label. With --llm an alt-text provider generates a description from the
image URL and the surrounding teaser content instead.

Environment variables:
  TEASERDECOR_LLM=true       enable alt-text generation
  TEASERDECOR_PROVIDER=xxx   provider (anthropic, openai, gemini, ollama)
  TEASERDECOR_MODEL=xxx      model name

Examples:
  teaserdecor decorate page.html
  teaserdecor decorate page.html -o decorated.html
  teaserdecor decorate page.html --page-url https://example.com/news
  teaserdecor decorate page.html --llm --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runDecorate,
}

func init() {
	decorateCmd.Flags().StringVarP(&decorateOutput, "output", "o", "", "output file path (default: stdout)")
	decorateCmd.Flags().BoolVar(&decorateUseLLM, "llm", false, "generate image alt text with an LLM provider")
	decorateCmd.Flags().StringVar(&decorateProvider, "provider", "", "alt-text provider (anthropic, openai, gemini, ollama)")
	decorateCmd.Flags().StringVar(&decorateModel, "model", "", "alt-text model name")
	decorateCmd.Flags().StringVar(&decoratePageURL, "page-url", "", "URL of the page being decorated (for external-link detection)")
	decorateCmd.Flags().StringVar(&decorateSelector, "selector", "", "CSS selector locating teaser block roots")
	decorateCmd.Flags().BoolVarP(&decorateQuiet, "quiet", "q", false, "quiet mode")

	rootCmd.AddCommand(decorateCmd)
}

func runDecorate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := parsePage(inputPath)
	if err != nil {
		return err
	}

	d, err := newDecorator(cfg, decoratePageURL, decorateSelector)
	if err != nil {
		return err
	}

	bindings := d.DecoratePage(doc)
	logger.Debug("decorated page",
		zap.String("file", inputPath),
		zap.Int("blocks", len(bindings)))

	useLLM := decorateUseLLM || config.GetEnvBool("TEASERDECOR_LLM")
	if useLLM {
		if err := applyAltText(cmd.Context(), doc, d, cfg); err != nil {
			return fmt.Errorf("alt-text generation failed: %w", err)
		}
	}

	out, err := dom.Render(doc)
	if err != nil {
		return err
	}

	if decorateOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	} else {
		if err := os.WriteFile(decorateOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if !decorateQuiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "decorated %d block(s): %s\n", len(bindings), decorateOutput)
		}
	}

	return nil
}

// parsePage reads and parses an HTML file.
func parsePage(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return dom.ParseDocument(f)
}

// loadConfig loads the user configuration, falling back to defaults when no
// config file exists.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newDecorator builds a decorator from the config, with CLI flag overrides
// for the page URL and the block selector.
func newDecorator(cfg *config.Config, pageURL, selector string) (*teaser.Decorator, error) {
	if pageURL == "" {
		pageURL = cfg.Decorate.PageURL
	}
	if selector == "" {
		selector = cfg.Decorate.Selector
	}

	var page *browse.Page
	if pageURL != "" {
		var err error
		page, err = browse.NewPage(pageURL)
		if err != nil {
			return nil, fmt.Errorf("invalid page URL: %w", err)
		}
	}

	return teaser.New(page, teaser.Options{
		TitleThreshold: cfg.Decorate.TitleThreshold,
		AltFallback:    cfg.Decorate.AltFallback,
		Selector:       selector,
	}), nil
}

// applyAltText replaces the generic accessible-name fallback with generated
// alt text on every decorated image that received it. Per-image failures are
// logged and skipped; the page is still written.
func applyAltText(ctx context.Context, doc *goquery.Document, d *teaser.Decorator, cfg *config.Config) error {
	provider, pcfg, err := selectProvider(cfg)
	if err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	opts := alttext.DefaultOptions()
	if cfg.AltText.Language != "" {
		opts.Language = cfg.AltText.Language
	}
	if cfg.AltText.Temperature > 0 {
		opts.Temperature = cfg.AltText.Temperature
	}
	if pcfg != nil && pcfg.MaxTokens > 0 {
		opts.MaxTokens = pcfg.MaxTokens
	}

	o := d.Options()
	cl := o.Classes
	doc.Find(o.Selector).Each(func(_ int, block *goquery.Selection) {
		img := block.Find("img." + cl.Image).First()
		if img.Length() == 0 {
			return
		}
		// Only images that got the generic fallback need a description.
		if label, _ := img.Attr("aria-label"); label != o.AltFallback {
			return
		}

		src, _ := img.Attr("src")
		image := alttext.Image{
			Src:         src,
			Title:       dom.TrimmedText(block.Find("." + cl.Title)),
			Topic:       dom.TrimmedText(block.Find("." + cl.Topic)),
			Description: dom.TrimmedText(block.Find("." + cl.Description)),
		}

		res, err := provider.Describe(ctx, image, opts)
		if err != nil {
			logger.Warn("alt text generation failed",
				zap.String("src", src),
				zap.Error(err))
			return
		}

		img.SetAttr("alt", res.AltText)
		img.RemoveAttr("aria-label")
		logger.Debug("generated alt text",
			zap.String("src", src),
			zap.String("model", res.Model),
			zap.Int("total_tokens", res.Usage.TotalTokens))
	})

	return nil
}
