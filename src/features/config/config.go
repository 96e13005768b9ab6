package config

// Config holds the application configuration.
type Config struct {
	FrontendURL string  `yaml:"frontendUrl"`
	Server      Server  `yaml:"server"`
	Logger      Logger  `yaml:"logger"`
	Gemini      Gemini  `yaml:"gemini"`
	Spotify     Spotify `yaml:"spotify"`
}

// Server holds the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Host        string `yaml:"host"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Gemini holds the configuration for the playlist idea generator.
// The API key is required; the process refuses to start without one.
type Gemini struct {
	APIKey string `yaml:"api_key" validate:"required"`
	Model  string `yaml:"model"`
}

// Spotify holds the OAuth client configuration. The redirect URI must match
// the value registered for the client in the Spotify developer dashboard;
// any mismatch makes every token exchange fail.
type Spotify struct {
	ClientID     string `yaml:"client_id" validate:"required"`
	ClientSecret string `yaml:"client_secret" validate:"required"`
	RedirectURI  string `yaml:"redirect_uri" validate:"required,url"`
}
