package ast

import "testing"

func TestDecodeProgramParsesCommandsAndSource(t *testing.T) {
	doc := `{
		"source": "SAY \"HI\"",
		"commands": [
			{"type": "SAY", "lineNumber": 1, "expr": {"kind": "LITERAL", "literal": "HI"}}
		]
	}`
	p, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Source != `SAY "HI"` {
		t.Fatalf("Source = %q, want SAY \"HI\"", p.Source)
	}
	if len(p.Commands) != 1 {
		t.Fatalf("Commands = %d, want 1", len(p.Commands))
	}
	cmd := p.Commands[0]
	if cmd.Type != Say || cmd.LineNumber != 1 {
		t.Fatalf("Commands[0] = %#v, want a SAY at line 1", cmd)
	}
	if cmd.Expr == nil || cmd.Expr.Kind != ExprLiteral || cmd.Expr.Literal != "HI" {
		t.Fatalf("Commands[0].Expr = %#v, want literal HI", cmd.Expr)
	}
}

func TestDecodeProgramNestedExpressionTree(t *testing.T) {
	doc := `{"commands": [
		{"type": "ASSIGNMENT", "lineNumber": 1, "variable": "X", "value": {
			"kind": "ARITHMETIC",
			"operator": "+",
			"left": {"kind": "LITERAL", "literal": 1},
			"right": {"kind": "LITERAL", "literal": 2}
		}}
	]}`
	p, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := p.Commands[0].Value
	if v == nil || v.Kind != ExprArithmetic || v.Operator != "+" {
		t.Fatalf("Value = %#v, want an ARITHMETIC + node", v)
	}
	if v.Left == nil || v.Left.Literal != float64(1) {
		t.Fatalf("Left = %#v, want literal 1", v.Left)
	}
	if v.Right == nil || v.Right.Literal != float64(2) {
		t.Fatalf("Right = %#v, want literal 2", v.Right)
	}
}

func TestDecodeProgramMalformedJSONIsAnError(t *testing.T) {
	if _, err := DecodeProgram([]byte("{not json")); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestJSONParserParseReturnsCommands(t *testing.T) {
	doc := `{"commands": [{"type": "EXIT", "lineNumber": 1}]}`
	cmds, err := JSONParser{}.Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmds) != 1 || cmds[0].Type != Exit {
		t.Fatalf("Parse() = %#v, want one EXIT command", cmds)
	}
}

func TestJSONParserParsePropagatesDecodeError(t *testing.T) {
	if _, err := (JSONParser{}).Parse("not json at all"); err == nil {
		t.Fatal("expected Parse to propagate a decode error")
	}
}
