package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	PubMed  PubMedConfig  `mapstructure:"pubmed"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// OpenAIConfig holds the generation-service settings. Temperatures are
// per stage: extraction is literal, diagnosis and summarization allow some
// variety in phrasing.
type OpenAIConfig struct {
	APIKey               string  `mapstructure:"api_key"`
	Model                string  `mapstructure:"model"`
	Timeout              int     `mapstructure:"timeout"` // milliseconds
	ExtractTemperature   float32 `mapstructure:"extract_temperature"`
	DiagnoseTemperature  float32 `mapstructure:"diagnose_temperature"`
	SummarizeTemperature float32 `mapstructure:"summarize_temperature"`
}

// PubMedConfig holds the NCBI E-utilities settings. The API key is optional
// and only raises rate limits.
type PubMedConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxResults int    `mapstructure:"max_results"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
