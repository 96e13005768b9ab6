package playlisting

import "fmt"

// ErrorKind classifies terminal flow failures. None of them are retried; the
// kind is what the presentation layer and metrics report.
type ErrorKind string

const (
	ErrSessionExpired       ErrorKind = "SessionExpired"
	ErrNoPendingRequest     ErrorKind = "NoPendingRequest"
	ErrEmptyTrackList       ErrorKind = "EmptyTrackList"
	ErrAuthExchangeFailed   ErrorKind = "AuthExchangeFailed"
	ErrNoMatchingTracks     ErrorKind = "NoMatchingTracks"
	ErrPlaylistCreateFailed ErrorKind = "PlaylistCreateFailed"
	ErrBatchAddFailed       ErrorKind = "BatchAddFailed"
	ErrProfileFetchFailed   ErrorKind = "ProfileFetchFailed"
)

// FlowError is a terminal callback-flow failure with a user-presentable message.
type FlowError struct {
	Kind    ErrorKind
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func flowErr(kind ErrorKind, format string, args ...any) *FlowError {
	return &FlowError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
