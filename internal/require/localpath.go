package require

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rexxgo/rexxcore/internal/security"
)

// LocalPathResolver serves a REQUIRE target from the filesystem: either a
// relative/absolute path reference directly, or a bare name searched across
// SearchPaths trying each of Extensions in turn, case-insensitively, the
// way go-dws's unit loader walks its search paths
// (internal/units' TestFindUnit: try exact name, then each extension,
// case-insensitively, across every configured directory).
type LocalPathResolver struct {
	SearchPaths []string
	Extensions  []string // tried in order, e.g. []string{".rexx", ".rx"}
}

// NewLocalPathResolver builds a resolver walking searchPaths, defaulting to
// the ".rexx"/".rx" extensions spec.md §4.8's path-normalization already
// strips when canonicalizing a target name.
func NewLocalPathResolver(searchPaths []string) *LocalPathResolver {
	return &LocalPathResolver{SearchPaths: searchPaths, Extensions: []string{".rexx", ".rx"}}
}

func (r *LocalPathResolver) Origin() security.Origin { return security.OriginLocal }

func (r *LocalPathResolver) Applies(ref Ref) bool {
	return ref.IsPath || len(r.SearchPaths) > 0
}

func (r *LocalPathResolver) Resolve(ref Ref) (LoadedLibrary, error) {
	if ref.IsPath {
		code, err := readAnyCase(ref.Name, r.Extensions)
		if err != nil {
			return LoadedLibrary{}, err
		}
		return LoadedLibrary{Ref: ref, Code: code}, nil
	}

	for _, dir := range r.SearchPaths {
		candidate := filepath.Join(dir, ref.Name)
		if code, err := readAnyCase(candidate, r.Extensions); err == nil {
			return LoadedLibrary{Ref: ref, Code: code}, nil
		}
	}
	return LoadedLibrary{}, fmt.Errorf("require: %q not found in any of %v", ref.Key(), r.SearchPaths)
}

// readAnyCase tries base verbatim, then base+ext for each ext, then as a
// last resort scans base's directory for any file whose name, minus its
// extension (whatever that is), matches base case-insensitively (the
// go-dws search strategy for platforms with case-sensitive filesystems
// hosting a differently-cased unit file).
func readAnyCase(base string, exts []string) (string, error) {
	candidates := []string{base}
	for _, ext := range exts {
		candidates = append(candidates, base+ext)
	}
	for _, c := range candidates {
		if data, err := os.ReadFile(c); err == nil {
			return string(data), nil
		}
	}

	dir, name := filepath.Split(base)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("require: cannot read %q: no matching file", base)
	}
	lowerName := strings.ToLower(name)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		entryBase := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if strings.ToLower(entryBase) == lowerName {
			data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err == nil {
				return string(data), nil
			}
		}
	}
	return "", fmt.Errorf("require: cannot read %q: no matching file", base)
}
