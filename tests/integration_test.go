package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binaryName returns the appropriate binary name for the current OS
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "teaserdecor_test.exe"
	}
	return "teaserdecor_test"
}

// buildTestBinary builds the test binary and returns a cleanup function
func buildTestBinary(t *testing.T) (string, func()) {
	t.Helper()
	binName := binaryName()
	buildCmd := exec.Command("go", "build", "-o", binName, "../cmd/teaserdecor")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}
	return binName, func() { os.Remove(binName) }
}

func TestDecorateCommand(t *testing.T) {
	fixtureDir := "fixtures"
	sampleFile := filepath.Join(fixtureDir, "sample.html")

	if _, err := os.Stat(sampleFile); os.IsNotExist(err) {
		t.Skipf("sample file not found: %s", sampleFile)
	}

	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "basic decorate",
			args:       []string{"decorate", sampleFile},
			wantOutput: []string{`class="teaser`, "teaser__title", "teaser__meta"},
		},
		{
			name:       "decorate with page url",
			args:       []string{"decorate", sampleFile, "--page-url", "https://www.example.com/news/"},
			wantOutput: []string{`target="_blank"`, `rel="noopener noreferrer"`},
		},
		{
			name:    "decorate with verbose",
			args:    []string{"decorate", sampleFile, "-v"},
			wantErr: false,
		},
		{
			name:    "decorate non-existent file",
			args:    []string{"decorate", "nonexistent.html"},
			wantErr: true,
		},
		{
			name:    "decorate with invalid page url",
			args:    []string{"decorate", sampleFile, "--page-url", "https://exa mple.com/"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("./"+binPath, tc.args...)
			output, err := cmd.CombinedOutput()

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v\noutput: %s", err, output)
				}
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(string(output), want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestDecorateOutputFile(t *testing.T) {
	sampleFile := filepath.Join("fixtures", "sample.html")

	if _, err := os.Stat(sampleFile); os.IsNotExist(err) {
		t.Skipf("sample file not found: %s", sampleFile)
	}

	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	outPath := filepath.Join(t.TempDir(), "decorated.html")
	cmd := exec.Command("./"+binPath, "decorate", sampleFile, "-o", outPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("decorate command failed: %v\noutput: %s", err, output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), "teaser__title") {
		t.Errorf("output file should contain decorated markup, got: %s", data)
	}
}

func TestInspectCommand(t *testing.T) {
	sampleFile := filepath.Join("fixtures", "sample.html")

	if _, err := os.Stat(sampleFile); os.IsNotExist(err) {
		t.Skipf("sample file not found: %s", sampleFile)
	}

	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "inspect as json",
			args:       []string{"inspect", sampleFile},
			wantOutput: []string{"{", `"title"`, `"title_size"`},
		},
		{
			name:       "inspect as text",
			args:       []string{"inspect", sampleFile, "--format", "text"},
			wantOutput: []string{"block 1:", "variant:", "title:"},
		},
		{
			name:    "inspect unsupported format",
			args:    []string{"inspect", sampleFile, "--format", "xml"},
			wantErr: true,
		},
		{
			name:    "inspect non-existent file",
			args:    []string{"inspect", "nonexistent.html"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("./"+binPath, tc.args...)
			output, err := cmd.CombinedOutput()

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v\noutput: %s", err, output)
				}
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(string(output), want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestProvidersCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "providers")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	// Check that all providers are listed
	providers := []string{"anthropic", "openai", "gemini", "ollama"}
	for _, p := range providers {
		if !strings.Contains(string(output), p) {
			t.Errorf("output should contain provider %q, got: %s", p, output)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(string(output), "teaserdecor") {
		t.Errorf("output should contain 'teaserdecor', got: %s", output)
	}
}

func TestConfigCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	t.Run("config show", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "show")
		output, err := cmd.CombinedOutput()

		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}
		if !strings.Contains(string(output), "default_provider") {
			t.Errorf("output should contain config contents, got: %s", output)
		}
	})

	t.Run("config path", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "path")
		output, err := cmd.CombinedOutput()

		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}
		if !strings.Contains(string(output), "config.yaml") {
			t.Errorf("output should contain the config path, got: %s", output)
		}
	})

	t.Run("config set invalid key", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "set", "bogus.key", "value")
		if _, err := cmd.CombinedOutput(); err == nil {
			t.Error("expected error for unknown config key")
		}
	})
}
