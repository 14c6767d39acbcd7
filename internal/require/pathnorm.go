package require

import (
	"path"
	"strings"
)

// Normalize canonicalizes a REQUIRE target name (spec.md §4.8 step 1).
// Bare names like "json" and "json.rexx" resolve to the same library;
// relative paths ("./lib/foo") are resolved against scriptDir and marked
// IsPath so the loader skips the registry/builtin rungs of the resolution
// ladder and goes straight to the filesystem.
func Normalize(target, scriptDir string) Ref {
	if strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") || strings.HasPrefix(target, "/") {
		p := target
		if !path.IsAbs(p) {
			p = path.Join(scriptDir, p)
		}
		return Ref{Name: path.Clean(p), IsPath: true}
	}

	name := target
	name = strings.TrimSuffix(name, ".rexx")
	name = strings.TrimSuffix(name, ".rx")

	namespace := ""
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		namespace, name = name[:idx], name[idx+1:]
	}

	return Ref{Name: name, Namespace: namespace, IsPath: false}
}

// Ref is a normalized REQUIRE target, ready for the resolution ladder.
type Ref struct {
	Name      string
	Namespace string
	Version   string
	IsPath    bool
}

// Key returns the canonical dependency-graph/cache key for this reference.
func (r Ref) Key() string {
	if r.IsPath {
		return r.Name
	}
	if r.Namespace != "" {
		return r.Namespace + "/" + r.Name
	}
	return r.Name
}
