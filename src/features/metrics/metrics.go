package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the prompt-to-playlist pipeline. Registered on the default
// registry so the /metrics endpoint picks them up without extra wiring.
var (
	PromptsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunesmith_prompts_processed_total",
		Help: "Prompts accepted by the idea generator endpoint.",
	})

	PlaylistRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunesmith_playlist_requests_total",
		Help: "Playlist-creation requests registered in the session store.",
	})

	PlaylistsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunesmith_playlists_created_total",
		Help: "Playlists successfully created and populated.",
	})

	CallbackFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunesmith_callback_failures_total",
		Help: "Terminal callback-flow failures by error kind.",
	}, []string{"kind"})

	TracksResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunesmith_tracks_resolved_total",
		Help: "Tracks matched to a Spotify ID by the resolver.",
	})

	TracksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunesmith_tracks_dropped_total",
		Help: "Tracks the resolver dropped for lack of a catalog match.",
	})

	HistoryLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunesmith_history_loads_total",
		Help: "Successful listening-history callback flows.",
	})
)
