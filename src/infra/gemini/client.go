package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"tunesmith/src/features/config"
	"tunesmith/src/features/generating"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// responseSchema constrains the model to the exact JSON shape the rest of
// the pipeline consumes.
const responseSchema = `{
	"type": "OBJECT",
	"properties": {
		"tracks": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"title": {"type": "STRING"},
					"artist": {"type": "STRING"}
				},
				"required": ["title", "artist"]
			}
		},
		"playlist_name": {"type": "STRING"},
		"playlist_description": {"type": "STRING"}
	},
	"required": ["tracks", "playlist_name", "playlist_description"]
}`

// Client implements generating.Generator against the Gemini REST API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *retryablehttp.Client
}

// NewClient creates a Gemini client from the configured API key and model.
func NewClient(cfg *config.Manager) *Client {
	httpClient := retryablehttp.NewClient()
	// One best-effort attempt per call; the caller surfaces failures as-is.
	httpClient.RetryMax = 0
	httpClient.Logger = nil
	httpClient.HTTPClient.Timeout = 30 * time.Second

	return &Client{
		apiKey:  cfg.Get().Gemini.APIKey,
		model:   cfg.Get().Gemini.Model,
		baseURL: defaultBaseURL,
		http:    httpClient,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GeneratePlaylist asks the model for a playlist matching the prompt.
func (c *Client) GeneratePlaylist(ctx context.Context, prompt string) (generating.GeneratedPlaylist, error) {
	instruction := fmt.Sprintf(`Based on this prompt: '%s', create a cohesive music playlist.

Think deeply about what kind of music would fit this theme or mood. Then suggest 5-10 specific songs (with correct artist names) that would make a great playlist.

Respond with JSON: a "tracks" array of {"title", "artist"} objects, a "playlist_name", and a "playlist_description" explaining the playlist concept.

Be thoughtful in your song selections, ensuring they're real songs by real artists that can be found on music streaming platforms.`, prompt)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   json.RawMessage(responseSchema),
		},
	})
	if err != nil {
		return generating.GeneratedPlaylist{}, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return generating.GeneratedPlaylist{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return generating.GeneratedPlaylist{}, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return generating.GeneratedPlaylist{}, fmt.Errorf("gemini api error (%d): %s", resp.StatusCode, errText)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return generating.GeneratedPlaylist{}, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return generating.GeneratedPlaylist{}, fmt.Errorf("invalid response structure from gemini")
	}

	var playlist generating.GeneratedPlaylist
	text := decoded.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &playlist); err != nil {
		return generating.GeneratedPlaylist{}, fmt.Errorf("failed to parse generated playlist: %w", err)
	}
	return playlist, nil
}
