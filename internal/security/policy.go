// Package security implements the policy gate REQUIRE consults before
// loading a library (spec.md §4.8 step 3: "ask the security component to
// approve the library under the active policy... and environment").
//
// No file in the teacher corpus implements an equivalent capability-policy
// gate (go-dws has no sandboxing layer at all — DWScript scripts run with
// full host privilege), so this package has no direct grounding source; it
// is built fresh from spec.md's description alone, using only the standard
// library, since there is nothing in the corpus to ground a third-party
// policy-engine choice on and the matrix below is a handful of plain
// comparisons, not a rules engine.
package security

// Policy is the active security posture (spec.md §4.8).
type Policy string

const (
	PolicyStrict    Policy = "strict"
	PolicyModerate  Policy = "moderate"
	PolicyDefault   Policy = "default"
	PolicyPermissive Policy = "permissive"
)

// Environment is the host environment a REQUIRE is resolved under
// (spec.md §4.8).
type Environment string

const (
	EnvLocalNode             Environment = "local-node"
	EnvWebStandalone         Environment = "web-standalone"
	EnvControlBusOrchestrated Environment = "control-bus-orchestrated"
	EnvRemote                Environment = "remote"
)

// Origin classifies where a library would be loaded from, used to decide
// whether the active Policy permits it.
type Origin string

const (
	OriginBuiltin  Origin = "builtin"  // co-located built-in directory
	OriginLocal    Origin = "local"    // local filesystem / module path
	OriginRegistry Origin = "registry" // namespace/module@version publisher registry
	OriginGitHub   Origin = "github"   // remote git-hosted raw file
	OriginOrchestrator Origin = "orchestrator" // control-bus / checkpoint round trip
)

// allowed[Policy] is the set of Origins that policy permits, independent of
// Environment. Environment further restricts network-reaching origins: a
// web-standalone embedding has no filesystem, so OriginLocal is never
// reachable there regardless of policy.
var allowed = map[Policy]map[Origin]bool{
	PolicyStrict: {
		OriginBuiltin: true,
	},
	PolicyModerate: {
		OriginBuiltin: true,
		OriginLocal:   true,
	},
	PolicyDefault: {
		OriginBuiltin:  true,
		OriginLocal:    true,
		OriginRegistry: true,
	},
	PolicyPermissive: {
		OriginBuiltin:      true,
		OriginLocal:        true,
		OriginRegistry:     true,
		OriginGitHub:       true,
		OriginOrchestrator: true,
	},
}

// envExcludes lists Origins an Environment can never serve regardless of
// Policy.
var envExcludes = map[Environment]map[Origin]bool{
	EnvWebStandalone: {
		OriginLocal: true, // no filesystem in a standalone browser embedding
	},
}

// Gate decides whether to permit loading a library of the given Origin
// under policy and env.
type Gate struct {
	Policy Policy
	Env    Environment
}

// NewGate creates a Gate. An unrecognized Policy is treated as PolicyStrict
// (fail closed) rather than silently permitting everything.
func NewGate(policy Policy, env Environment) *Gate {
	if _, ok := allowed[policy]; !ok {
		policy = PolicyStrict
	}
	return &Gate{Policy: policy, Env: env}
}

// Approve reports whether origin may be loaded, and if not, why.
func (g *Gate) Approve(origin Origin) (bool, string) {
	if excluded := envExcludes[g.Env]; excluded != nil && excluded[origin] {
		return false, string(origin) + " is unreachable from " + string(g.Env)
	}
	if !allowed[g.Policy][origin] {
		return false, string(origin) + " not permitted under " + string(g.Policy) + " policy"
	}
	return true, ""
}
