package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .ucp.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to ucp! Let's configure your project.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the pattern library",
		Default: defaults.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 2. Retrieval size.
	kPrompt := promptui.Prompt{
		Label:    "Patterns retrieved per synthesis",
		Default:  strconv.Itoa(defaults.RetrievalK),
		Validate: validatePositiveInt,
	}
	kStr, err := kPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("retrieval size: %w", err)
	}
	retrievalK, _ := strconv.Atoi(kStr)

	// 3. Autonomous iteration cap.
	iterPrompt := promptui.Prompt{
		Label:    "Maximum autonomous iterations per run",
		Default:  strconv.Itoa(defaults.MaxIterations),
		Validate: validatePositiveInt,
	}
	iterStr, err := iterPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("iteration cap: %w", err)
	}
	maxIterations, _ := strconv.Atoi(iterStr)

	// 4. Include patterns for corpus scans.
	includePrompt := promptui.Prompt{
		Label:   "Scan include patterns (comma-separated globs)",
		Default: "**/*.md, **/*.txt",
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	include := splitAndTrim(includeStr)

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	cfg := &Config{
		DataDir:       dataDir,
		RetrievalK:    retrievalK,
		MaxIterations: maxIterations,
		Port:          defaults.Port,
		AllowAll:      defaults.AllowAll,
		Include:       include,
		Exclude:       exclude,
		MaxFileSize:   defaults.MaxFileSize,
	}

	configPath := ".ucp.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			token := trimSpace(s[start:i])
			if token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}
