package generating

// GeneratedTrack is one song suggestion from the idea generator.
type GeneratedTrack struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// GeneratedPlaylist is the generator's answer to a prompt.
type GeneratedPlaylist struct {
	Tracks              []GeneratedTrack `json:"tracks"`
	PlaylistName        string           `json:"playlist_name"`
	PlaylistDescription string           `json:"playlist_description"`
}

// PromptRequest is the body of a prompt submission.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}
