package registry

import (
	"testing"

	"github.com/rexxgo/rexxcore/internal/values"
)

func TestCallFunctionPositional(t *testing.T) {
	r := New()
	r.RegisterFunction(FunctionInfo{
		Name:               "UPPER",
		RequiresParameters: true,
		Impl: func(args []values.Value) (values.Value, error) {
			return values.Str{V: args[0].String()}, nil
		},
	})
	got, err := r.CallFunction("upper", []values.Value{values.Str{V: "hi"}})
	if err != nil || got.String() != "hi" {
		t.Fatalf("CallFunction = %v, %v", got, err)
	}
}

func TestNullaryWhitelistBypassesParameterRequirement(t *testing.T) {
	r := New()
	r.RegisterFunction(FunctionInfo{
		Name:               "TODAY",
		RequiresParameters: true,
		Impl: func(args []values.Value) (values.Value, error) {
			return values.Str{V: "2026-07-30"}, nil
		},
	})
	if _, err := r.CallFunction("TODAY", nil); err != nil {
		t.Fatalf("TODAY should be nullary-whitelisted: %v", err)
	}
}

func TestRequiresParametersRejectsZeroArgs(t *testing.T) {
	r := New()
	r.RegisterFunction(FunctionInfo{
		Name:               "LENGTH",
		RequiresParameters: true,
		Impl: func(args []values.Value) (values.Value, error) {
			return values.Int{V: int64(len(args[0].String()))}, nil
		},
	})
	if _, err := r.CallFunction("LENGTH", nil); err == nil {
		t.Fatal("expected error calling parameterized function with zero args")
	}
}

func TestCallFunctionNamedAdaptsToPositionalWithSynonyms(t *testing.T) {
	r := New()
	r.RegisterFunction(FunctionInfo{
		Name: "ARRAY_LEN",
		Params: []Param{
			{Name: "ARRAY", Synonyms: []string{"ARR"}},
		},
		Impl: func(args []values.Value) (values.Value, error) {
			seq := args[0].(values.Seq)
			return values.Int{V: int64(len(seq.Items))}, nil
		},
	})
	named := map[string]values.Value{
		"arr": values.Seq{Items: []values.Value{values.Int{V: 1}, values.Int{V: 2}}},
	}
	got, err := r.CallFunctionNamed("ARRAY_LEN", named)
	if err != nil {
		t.Fatal(err)
	}
	if got.(values.Int).V != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestOperationReceivesNamedMappingDirectly(t *testing.T) {
	r := New()
	var seen map[string]values.Value
	r.RegisterOperation(OperationInfo{
		Name: "LOADLIB",
		Impl: func(named map[string]values.Value) (values.Value, error) {
			seen = named
			return values.Bool{V: true}, nil
		},
	})
	_, err := r.CallOperation("loadlib", map[string]values.Value{"NAME": values.Str{V: "x"}})
	if err != nil {
		t.Fatal(err)
	}
	if seen["NAME"].String() != "x" {
		t.Fatalf("operation did not receive named mapping: %v", seen)
	}
}

func TestUnregisterRemovesBothTables(t *testing.T) {
	r := New()
	r.RegisterFunction(FunctionInfo{Name: "F", Impl: func(a []values.Value) (values.Value, error) { return values.Bool{V: true}, nil }})
	r.Unregister("F")
	if _, ok := r.LookupFunction("F"); ok {
		t.Fatal("expected F to be unregistered")
	}
}
