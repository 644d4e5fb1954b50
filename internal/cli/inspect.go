package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blocksmith-io/teaserdecor/internal/teaser"
)

var (
	inspectOutput      string
	inspectFormat      string
	inspectPageURL     string
	inspectSelector    string
	inspectPrettyPrint bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.html>",
	Short: "Report how each teaser block in a page is classified",
	Long: `Decorates every teaser block in an HTML page and reports the
classification outcome per block: variant flags, title and its size class,
meta topic and date, and the links with the primary navigation target.

The decorated markup is discarded; only the report is written. Output is
JSON or a text summary.

Examples:
  teaserdecor inspect page.html
  teaserdecor inspect page.html -o report.json
  teaserdecor inspect page.html --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "output file path (default: stdout)")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "json", "output format (json, text)")
	inspectCmd.Flags().StringVar(&inspectPageURL, "page-url", "", "URL of the page being inspected")
	inspectCmd.Flags().StringVar(&inspectSelector, "selector", "", "CSS selector locating teaser block roots")
	inspectCmd.Flags().BoolVar(&inspectPrettyPrint, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	d, err := newDecorator(cfg, inspectPageURL, inspectSelector)
	if err != nil {
		return err
	}

	reports := d.InspectPage(doc)

	output, err := formatReports(reports, inspectFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if inspectOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		if err := os.WriteFile(inspectOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "inspected %d block(s): %s\n", len(reports), inspectOutput)
	}

	return nil
}

func formatReports(reports []*teaser.Report, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if inspectPrettyPrint {
			data, err = json.MarshalIndent(reports, "", "  ")
		} else {
			data, err = json.Marshal(reports)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatReportsAsText(reports), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatReportsAsText(reports []*teaser.Report) string {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "block %d:\n", i+1)
		fmt.Fprintf(&sb, "  variant: %s\n", variantName(r))
		if r.Title != "" {
			fmt.Fprintf(&sb, "  title: %s (%s)\n", r.Title, r.TitleSize)
		}
		if r.Topic != "" || r.Date != "" {
			fmt.Fprintf(&sb, "  meta: %s | %s\n", r.Topic, r.Date)
		}
		if r.HasDescription {
			fmt.Fprintf(&sb, "  description: yes\n")
		}
		for _, link := range r.Links {
			kind := "link"
			if link.Button {
				kind = "button"
			}
			scope := ""
			if link.External {
				scope = " (external)"
			}
			fmt.Fprintf(&sb, "  %s: %s%s\n", kind, link.Href, scope)
		}
		if r.PrimaryURL != "" {
			fmt.Fprintf(&sb, "  primary: %s\n", r.PrimaryURL)
		}
	}
	return sb.String()
}

func variantName(r *teaser.Report) string {
	var parts []string
	if r.NoImage {
		parts = append(parts, "no-image")
	} else {
		parts = append(parts, "with-image")
	}
	if r.Dark {
		parts = append(parts, "dark")
	}
	return strings.Join(parts, ", ")
}
