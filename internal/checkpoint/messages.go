// Package checkpoint defines the message envelopes the engine posts to a
// parent host and the replies it expects back (spec.md §6: "Checkpoint
// messaging"). No file in the teacher corpus models a host-message
// envelope (DWScript has no remote-orchestration story at all), so these
// types are built fresh from spec.md's description; they are plain
// stdlib-serializable structs, not a third-party message-bus client, since
// transport is the embedding host's responsibility — the engine only needs
// the shape.
package checkpoint

// Kind names the checkpoint message types spec.md §6 lists.
type Kind string

const (
	KindProgress        Kind = "rexx-progress"
	KindRequire         Kind = "rexx-require"
	KindGraphics        Kind = "rexx-graphics"
	KindRequireResponse Kind = "rexx-require-response"
	KindLibraryResponse Kind = "library-response"
)

// RequireSubtype distinguishes rexx-require message subtypes.
type RequireSubtype string

const (
	SubtypeRequireRequest RequireSubtype = "require_request"
)

// Message is the outbound envelope posted to the parent host.
type Message struct {
	Kind    Kind
	Subtype RequireSubtype `json:",omitempty"`

	// RequireID correlates a require_request with its rexx-require-response.
	RequireID string `json:",omitempty"`
	// RequestID correlates a library fetch with its library-response.
	RequestID string `json:",omitempty"`

	// Payload carries message-specific data: progress percentage/label for
	// KindProgress, library name/version for KindRequire, a drawing command
	// for KindGraphics.
	Payload map[string]any `json:",omitempty"`
}

// Response is an inbound reply from the parent host.
type Response struct {
	Kind      Kind
	RequireID string `json:",omitempty"`
	RequestID string `json:",omitempty"`
	Code      string `json:",omitempty"` // source code returned for a library fetch
	Error     string `json:",omitempty"`
}

// Sender posts a Message to the host and is the engine's only dependency on
// a concrete transport; REQUIRE's control-bus-orchestrated and
// remote-orchestrated-checkpoint resolution strategies (spec.md §4.8 step 6)
// both go through it.
type Sender interface {
	Post(Message)
}

// Waiter blocks for a correlated Response, used by both REQUIRE resolution
// strategies that must await a host reply. Await takes only the correlation
// id; the deadline is the implementation's own (pkg/wasmhost's waiter gives
// up after 30s), and OrchestratorResolver adds none of its own.
type Waiter interface {
	Await(correlationID string) (Response, error)
}
