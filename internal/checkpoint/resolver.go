package checkpoint

import (
	"fmt"
	"sync/atomic"

	"github.com/rexxgo/rexxcore/internal/require"
	"github.com/rexxgo/rexxcore/internal/security"
)

// OrchestratorResolver is the last rung of spec.md §4.8 step 6's ladder: it
// posts a require_request checkpoint message to the embedding host and
// blocks for the correlated rexx-require-response, covering both the
// control-bus-orchestrated and remote-orchestrated-checkpoint resolution
// strategies spec.md names (the two differ only in what sits on the other
// end of Sender/Waiter, which is the host's concern, not this resolver's).
type OrchestratorResolver struct {
	Sender Sender
	Waiter Waiter

	nextID int64
}

// NewOrchestratorResolver builds a resolver posting requests through sender
// and awaiting replies through waiter.
func NewOrchestratorResolver(sender Sender, waiter Waiter) *OrchestratorResolver {
	return &OrchestratorResolver{Sender: sender, Waiter: waiter}
}

func (r *OrchestratorResolver) Origin() security.Origin { return security.OriginOrchestrator }

// Applies unconditionally: this is the ladder's last-resort rung (spec.md
// §4.8 step 6 lists it after every local strategy), so it takes whatever
// no earlier resolver claimed.
func (r *OrchestratorResolver) Applies(ref require.Ref) bool { return true }

func (r *OrchestratorResolver) Resolve(ref require.Ref) (require.LoadedLibrary, error) {
	id := fmt.Sprintf("require-%d", atomic.AddInt64(&r.nextID, 1))

	r.Sender.Post(Message{
		Kind:      KindRequire,
		Subtype:   SubtypeRequireRequest,
		RequireID: id,
		Payload:   map[string]any{"name": ref.Key(), "namespace": ref.Namespace},
	})

	resp, err := r.Waiter.Await(id)
	if err != nil {
		return require.LoadedLibrary{}, fmt.Errorf("require %q: awaiting host response: %w", ref.Key(), err)
	}
	if resp.Error != "" {
		return require.LoadedLibrary{}, fmt.Errorf("require %q: host reported: %s", ref.Key(), resp.Error)
	}
	return require.LoadedLibrary{Ref: ref, Code: resp.Code}, nil
}
