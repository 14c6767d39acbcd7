package require

import "github.com/rexxgo/rexxcore/internal/security"

// BuiltinResolver serves libraries from a static, in-process table (spec.md
// §4.8 step 6's "built-ins" rung), grounded on go-dws's unit cache holding
// already-loaded units by name rather than re-reading a file each time
// (internal/units' TestCachePutAndGet) — a builtin library never touches a
// filesystem at all, so the table itself *is* the cache.
type BuiltinResolver struct {
	Libraries map[string]string // Ref.Key() -> source code
}

// NewBuiltinResolver builds a resolver over a fixed name->source table.
func NewBuiltinResolver(libraries map[string]string) *BuiltinResolver {
	return &BuiltinResolver{Libraries: libraries}
}

func (r *BuiltinResolver) Origin() security.Origin { return security.OriginBuiltin }

func (r *BuiltinResolver) Applies(ref Ref) bool {
	if ref.IsPath {
		return false
	}
	_, ok := r.Libraries[ref.Key()]
	return ok
}

func (r *BuiltinResolver) Resolve(ref Ref) (LoadedLibrary, error) {
	code, ok := r.Libraries[ref.Key()]
	if !ok {
		return LoadedLibrary{}, &ErrNoResolver{Ref: ref}
	}
	return LoadedLibrary{Ref: ref, Code: code}, nil
}
