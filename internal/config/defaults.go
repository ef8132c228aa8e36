package config

// DefaultExcludes are glob patterns excluded from corpus scans by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:       ".ucp",
		RetrievalK:    3,
		MaxIterations: 5,
		Port:          8080,
		AllowAll:      false,
		Include:       []string{"**/*.md", "**/*.txt"},
		Exclude:       DefaultExcludes,
		MaxFileSize:   1 << 20,
	}
}
