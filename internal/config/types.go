package config

// Config is the top-level ucp configuration, corresponding to .ucp.yml.
type Config struct {
	DataDir       string   `yaml:"data_dir" koanf:"data_dir"`
	RetrievalK    int      `yaml:"retrieval_k" koanf:"retrieval_k"`
	MaxIterations int      `yaml:"max_iterations" koanf:"max_iterations"`
	Port          int      `yaml:"port" koanf:"port"`
	AllowAll      bool     `yaml:"allow_all" koanf:"allow_all"`
	Include       []string `yaml:"include" koanf:"include"`
	Exclude       []string `yaml:"exclude" koanf:"exclude"`
	MaxFileSize   int64    `yaml:"max_file_size" koanf:"max_file_size"`
}
