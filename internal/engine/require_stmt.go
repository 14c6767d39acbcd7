package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rexxgo/rexxcore/internal/registry"
	"github.com/rexxgo/rexxcore/internal/require"
	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// metaLabelRE locates the label a library's @rexxjs-meta annotation
// documents (spec.md §4.8 step 8, §6 "Library detection function
// contract"): a comment containing the marker, followed (possibly several
// lines later) by the LABEL it describes.
var metaLabelRE = regexp.MustCompile(`(?is)@rexxjs-meta.*?\n\s*([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// RequireStatus reports the dependency graph and resolved versions of every
// library REQUIRE has loaded so far (SPEC_FULL.md's status/listing
// enrichment of C9), or nil if no require.Loader was installed via
// WithRequireLadder.
func (e *Engine) RequireStatus() []require.Status {
	if e.requireLoader == nil {
		return nil
	}
	return require.ListStatus(e.requireLoader.Graph, e.requireLoader.Manifest)
}

// evalRequireCall implements REQUIRE (spec.md §4.8), intercepted ahead of
// the registry lookup in evalFunctionCall so it can never be shadowed by
// (or shadow) an ordinary built-in. Args[0] is the library name/path; an
// AS clause arrives either as a second positional argument or as the named
// argument "AS" (`REQUIRE "./lib.js" AS "math_"` parses to whichever shape
// the host parser produces for a trailing modifier clause).
func (e *Engine) evalRequireCall(expr *ast.Expr) (values.Value, error) {
	if len(expr.Args) == 0 && len(expr.NamedArgs) == 0 {
		return nil, fmt.Errorf("REQUIRE: missing library name")
	}

	var name string
	if nameExpr, ok := expr.NamedArgs["NAME"]; ok {
		v, err := e.evaluateExpression(nameExpr)
		if err != nil {
			return nil, err
		}
		name = v.String()
	} else if len(expr.Args) > 0 {
		v, err := e.evaluateExpression(expr.Args[0])
		if err != nil {
			return nil, err
		}
		name = v.String()
	}

	asClause := ""
	if asExpr, ok := expr.NamedArgs["AS"]; ok {
		v, err := e.evaluateExpression(asExpr)
		if err != nil {
			return nil, err
		}
		asClause = v.String()
	} else if len(expr.Args) > 1 {
		v, err := e.evaluateExpression(expr.Args[1])
		if err != nil {
			return nil, err
		}
		asClause = v.String()
	}

	if e.requireLoader == nil {
		return nil, fmt.Errorf("REQUIRE: no loader configured")
	}

	result, err := e.requireLoader.Require(name, e.scriptDir)
	if err != nil {
		return nil, fmt.Errorf("REQUIRE: %w", err)
	}

	if err := e.applyAsClause(result.Ref.Key(), result.Metadata, asClause); err != nil {
		return nil, fmt.Errorf("REQUIRE: %w", err)
	}

	return values.Bool{V: true}, nil
}

// applyAsClause aliases a loaded library's already-bare-registered names
// under their AS-clause-rewritten form (spec.md §4.8 "AS-clause
// rewriting"). Registration of the bare names themselves happens earlier,
// inside engineEvaluator.Execute, since that runs for every transitively
// loaded library, whereas the AS clause only ever applies to the library
// named directly in this REQUIRE call.
func (e *Engine) applyAsClause(libKey string, md require.Metadata, asClause string) error {
	if asClause == "" {
		return nil
	}
	for _, fn := range md.Functions {
		info, ok := e.Registry.LookupFunction(fn)
		if !ok {
			continue
		}
		e.Registry.RegisterFunction(registry.FunctionInfo{
			Name:               require.RewriteFunctionName(asClause, fn),
			Impl:               info.Impl,
			RequiresParameters: info.RequiresParameters,
			Params:             info.Params,
		})
	}
	for _, op := range md.Operations {
		info, ok := e.Registry.LookupOperation(op)
		if !ok {
			continue
		}
		e.Registry.RegisterOperation(registry.OperationInfo{
			Name:   require.RewriteFunctionName(asClause, op),
			Impl:   info.Impl,
			Params: info.Params,
		})
	}
	if md.AddressTarget != "" {
		newName, err := require.RewriteAddressTarget(asClause, md.AddressTarget)
		if err != nil {
			return err
		}
		if target, ok := e.Addresses.Lookup(md.AddressTarget); ok && newName != md.AddressTarget {
			renamed := *target
			renamed.Name = newName
			e.Addresses.Register(&renamed)
		}
	}
	return nil
}

// engineEvaluator adapts *Engine into require.Evaluator (spec.md §4.8 step
// 7): it runs a loaded library's source once in a dedicated child Engine,
// keeps that child alive in host.libraryEngines so later calls can be
// dispatched into it, registers the library's declared functions/
// operations/address-target into the host registry under their bare
// (un-rewritten) names, and returns the metadata the loader needs to
// recurse into dependencies.
type engineEvaluator struct {
	host *Engine
}

func (ev *engineEvaluator) Execute(code string) (require.Metadata, error) {
	if ev.host.parser == nil {
		return require.Metadata{}, fmt.Errorf("no parser configured")
	}
	commands, err := ev.host.parser.Parse(code)
	if err != nil {
		return require.Metadata{}, fmt.Errorf("parsing: %w", err)
	}

	child := &Engine{
		Store:          values.NewStore(),
		Registry:       ev.host.Registry,
		Addresses:      ev.host.Addresses,
		Stack:          values.NewEvalStack(),
		Numeric:        ev.host.Numeric,
		Out:            ev.host.Out,
		handlers:       NewHandlerTable(),
		requireLoader:  ev.host.requireLoader,
		parser:         ev.host.parser,
		gate:           ev.host.gate,
		scriptDir:      ev.host.scriptDir,
		libraryEngines: ev.host.libraryEngines,
	}
	if _, err := child.Run(commands, code, ""); err != nil {
		return require.Metadata{}, fmt.Errorf("evaluating library: %w", err)
	}

	md, detectLabel, err := detectMetadata(child, code)
	if err != nil {
		return require.Metadata{}, err
	}

	if ev.host.libraryEngines == nil {
		ev.host.libraryEngines = map[string]*Engine{}
	}
	ev.host.libraryEngines[detectLabel] = child

	for _, fn := range md.Functions {
		fnName, childEngine := fn, child
		ev.host.Registry.RegisterFunction(registry.FunctionInfo{
			Name: fnName,
			Impl: func(args []values.Value) (values.Value, error) {
				return childEngine.callSubroutine(fnName, args)
			},
		})
	}
	for _, op := range md.Operations {
		opName, childEngine := op, child
		ev.host.Registry.RegisterOperation(registry.OperationInfo{
			Name: opName,
			Impl: func(named map[string]values.Value) (values.Value, error) {
				args := make([]values.Value, 0, len(named))
				for _, v := range named {
					args = append(args, v)
				}
				return childEngine.callSubroutine(opName, args)
			},
		})
	}
	if md.AddressTarget != "" {
		targetName, childEngine := md.AddressTarget, child
		ev.host.Addresses.Register(NewTarget(targetName, func(commandString, contextJSON string, source SourceContext) (string, error) {
			v, err := childEngine.callSubroutine(targetName, []values.Value{values.Str{V: commandString}})
			if err != nil {
				return "", err
			}
			return valueToJSONLiteral(v), nil
		}, nil))
	}

	return md, nil
}

// detectMetadata finds the @rexxjs-meta-annotated label in code, calls it
// in child with no arguments, and converts its returned mapping into
// require.Metadata (spec.md §6 "Library detection function contract":
// `{ type, version, functions, operations, provides: { addressTarget? },
// dependencies, interpreterHandlesInterpolation? }`).
func detectMetadata(child *Engine, code string) (require.Metadata, string, error) {
	match := metaLabelRE.FindStringSubmatch(code)
	if match == nil {
		return require.Metadata{}, "", fmt.Errorf("metadata absent: no @rexxjs-meta annotation found")
	}
	label := match[1]

	result, err := child.callSubroutine(label, nil)
	if err != nil {
		return require.Metadata{}, "", fmt.Errorf("metadata absent: invoking %s: %w", label, err)
	}

	m, ok := result.(*values.Map)
	if !ok {
		return require.Metadata{}, "", fmt.Errorf("metadata absent: %s did not return a mapping", label)
	}

	md := require.Metadata{}
	if v, ok := m.Get("TYPE"); ok {
		md.Type = v.String()
	}
	if v, ok := m.Get("VERSION"); ok {
		md.Version = v.String()
	}
	if v, ok := m.Get("FUNCTIONS"); ok {
		md.Functions = stringsOf(v)
	}
	if v, ok := m.Get("OPERATIONS"); ok {
		md.Operations = stringsOf(v)
	}
	if v, ok := m.Get("DEPENDENCIES"); ok {
		md.Dependencies = stringsOf(v)
	}
	if v, ok := m.Get("INTERPRETERHANDLESINTERPOLATION"); ok {
		md.InterpreterHandlesInterpolation = values.Truthy(v)
	}
	if v, ok := m.Get("PROVIDES"); ok {
		if provides, ok := v.(*values.Map); ok {
			if target, ok := provides.Get("ADDRESSTARGET"); ok {
				md.AddressTarget = target.String()
			}
		}
	}
	return md, label, nil
}

// valueToJSONLiteral renders v as a bare JSON scalar, used for an ADDRESS
// target backed by a REQUIRE'd library's own subroutine: the engine's
// parseAddressResponse (address_json.go) treats a non-object response as a
// direct RESULT value rather than the {success,...} envelope.
func valueToJSONLiteral(v values.Value) string {
	switch t := v.(type) {
	case values.Int:
		return fmt.Sprintf("%d", t.V)
	case values.Float:
		return fmt.Sprintf("%g", t.V)
	case values.Bool:
		if t.V {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%q", v.String())
	}
}

func stringsOf(v values.Value) []string {
	seq, ok := v.(values.Seq)
	if !ok {
		if s := strings.TrimSpace(v.String()); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, len(seq.Items))
	for i, item := range seq.Items {
		out[i] = item.String()
	}
	return out
}
