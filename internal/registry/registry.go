// Package registry implements the Built-in Function & Operation Registry
// (spec.md C8, §4.7): two parallel tables — side-effect-free Functions
// (positional-argument) and side-effecting Operations (named-argument) —
// plus the name-to-position adapter functions need to accept named
// parameters.
//
// Grounded on github.com/cwbudde/go-dws internal/interp/builtins/registry.go
// (case-insensitive Registry with categorized metadata), generalized per
// Design Notes §9: "three typed registry tables with identical surface but
// different parameter-binding rules" — here split into Functions and
// Operations (the third table, ExternalFn/AddressMethod, is resolved by the
// engine's function-call ladder in internal/engine, not stored here).
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rexxgo/rexxcore/internal/values"
)

// FunctionImpl is a side-effect-free built-in, invoked with positional
// arguments (spec.md §4.7).
type FunctionImpl func(args []values.Value) (values.Value, error)

// OperationImpl is a side-effecting built-in, invoked with the named
// parameter mapping directly (spec.md §4.7).
type OperationImpl func(named map[string]values.Value) (values.Value, error)

// Param describes one formal parameter for the named-to-positional adapter,
// including its accepted synonyms (spec.md §4.7: "e.g., array|arr,
// text|string|value").
type Param struct {
	Name     string
	Synonyms []string
}

// matches reports whether argName (already upper-cased) names this param.
func (p Param) matches(argName string) bool {
	if strings.EqualFold(p.Name, argName) {
		return true
	}
	for _, s := range p.Synonyms {
		if strings.EqualFold(s, argName) {
			return true
		}
	}
	return false
}

// FunctionInfo is one registered built-in function.
type FunctionInfo struct {
	Name               string
	Impl               FunctionImpl
	RequiresParameters bool
	Params             []Param
}

// OperationInfo is one registered built-in operation.
type OperationInfo struct {
	Name   string
	Impl   OperationImpl
	Params []Param
}

// nullaryWhitelist holds built-in names known to be callable with zero
// arguments despite appearing parameterized (spec.md §4.7: "domain-specific
// names known to be nullary... are whitelisted").
var nullaryWhitelist = map[string]bool{
	"TODAY": true,
	"NOW":   true,
	"UUID":  true,
}

// Registry holds the Functions and Operations tables.
type Registry struct {
	functions  map[string]*FunctionInfo
	operations map[string]*OperationInfo
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		functions:  make(map[string]*FunctionInfo),
		operations: make(map[string]*OperationInfo),
	}
}

func key(name string) string { return values.CanonicalName(name) }

// RegisterFunction adds or replaces a built-in function.
func (r *Registry) RegisterFunction(info FunctionInfo) {
	r.functions[key(info.Name)] = &info
}

// RegisterOperation adds or replaces a built-in operation.
func (r *Registry) RegisterOperation(info OperationInfo) {
	r.operations[key(info.Name)] = &info
}

// Unregister removes a function or operation by name. REQUIRE's AS-clause
// rewriting does not call it: a library's bare names stay registered
// alongside their rewritten aliases.
func (r *Registry) Unregister(name string) {
	k := key(name)
	delete(r.functions, k)
	delete(r.operations, k)
}

// LookupFunction returns the named function, if registered.
func (r *Registry) LookupFunction(name string) (*FunctionInfo, bool) {
	f, ok := r.functions[key(name)]
	return f, ok
}

// LookupOperation returns the named operation, if registered.
func (r *Registry) LookupOperation(name string) (*OperationInfo, bool) {
	o, ok := r.operations[key(name)]
	return o, ok
}

// CallFunction invokes a registered function with positional args, refusing
// a zero-argument call against a parameterized function unless its name is
// on the nullary whitelist (spec.md §4.7).
func (r *Registry) CallFunction(name string, args []values.Value) (values.Value, error) {
	info, ok := r.LookupFunction(name)
	if !ok {
		return nil, fmt.Errorf("undefined function: %s", name)
	}
	if info.RequiresParameters && len(args) == 0 && !nullaryWhitelist[key(name)] {
		return nil, fmt.Errorf("function %s requires parameters", name)
	}
	return info.Impl(args)
}

// CallFunctionNamed adapts a named-parameter call onto a function's
// positional signature (spec.md §4.7: "a name-indexed adapter maps the
// parsed named-params into the expected positional order").
func (r *Registry) CallFunctionNamed(name string, named map[string]values.Value) (values.Value, error) {
	info, ok := r.LookupFunction(name)
	if !ok {
		return nil, fmt.Errorf("undefined function: %s", name)
	}
	args := adaptPositional(info.Params, named)
	if info.RequiresParameters && len(args) == 0 && !nullaryWhitelist[key(name)] {
		return nil, fmt.Errorf("function %s requires parameters", name)
	}
	return info.Impl(args)
}

// CallOperation invokes a registered operation with the raw named-parameter
// mapping (spec.md §4.7).
func (r *Registry) CallOperation(name string, named map[string]values.Value) (values.Value, error) {
	info, ok := r.LookupOperation(name)
	if !ok {
		return nil, fmt.Errorf("undefined operation: %s", name)
	}
	return info.Impl(named)
}

// adaptPositional maps a named-argument call onto the declared parameter
// order, honoring synonyms. Unmatched named args are dropped rather than
// erroring — positional functions that don't declare a param simply never
// see it, mirroring the adapter's permissive "best effort" shape rather
// than a strict schema validator.
func adaptPositional(params []Param, named map[string]values.Value) []Value {
	out := make([]values.Value, len(params))
	for i, p := range params {
		for argName, v := range named {
			if p.matches(argName) {
				out[i] = v
				break
			}
		}
	}
	// Trim trailing unset slots so CallFunction's zero-arg nullary check
	// still works when no named args matched any declared param.
	last := len(out)
	for last > 0 && out[last-1] == nil {
		last--
	}
	return out[:last]
}

// Names returns every registered function and operation name, sorted in
// plain byte order by sort.Strings (spec.md §4.8 "Metadata persistence" implies some later listing
// operation is needed to see what REQUIRE populated).
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.functions)+len(r.operations))
	for _, f := range r.functions {
		out = append(out, f.Name)
	}
	for _, o := range r.operations {
		out = append(out, o.Name)
	}
	sort.Strings(out)
	return out
}

type Value = values.Value
