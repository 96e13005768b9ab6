package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new ConfigManager.
// If the file doesn't exist, creates a default configuration. Environment
// variables override file values before validation, so a config file with no
// secrets plus GEMINI_API_KEY / SPOTIFY_ID / SPOTIFY_SECRET in the environment
// is a valid deployment.
func Load(path string) (*Manager, error) {
	var cfg *Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		cfg = createDefaultConfig()
		if err := saveDefaultConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		cfg = &Config{}
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return NewManager(cfg), nil
}

// applyEnvOverrides copies recognized environment variables over the file values.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if id := os.Getenv("SPOTIFY_ID"); id != "" {
		cfg.Spotify.ClientID = id
	}
	if secret := os.Getenv("SPOTIFY_SECRET"); secret != "" {
		cfg.Spotify.ClientSecret = secret
	}
	if uri := os.Getenv("SPOTIFY_REDIRECT_URI"); uri != "" {
		cfg.Spotify.RedirectURI = uri
	}
	if url := os.Getenv("FRONTEND_URL"); url != "" {
		cfg.FrontendURL = url
	}
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
}

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		FrontendURL: "http://localhost:3000",
		Server: Server{
			PrintRoutes: false,
			Host:        "0.0.0.0",
			Port:        8081,
		},
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Gemini: Gemini{
			APIKey: "", // Required; set here or via GEMINI_API_KEY
			Model:  "gemini-2.0-flash",
		},
		Spotify: Spotify{
			ClientID:     "",
			ClientSecret: "",
			RedirectURI:  "http://127.0.0.1:8081/callback",
		},
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
