package ast

import "encoding/json"

// Program is the on-disk shape a host-supplied parser hands to this module:
// the flat Command sequence plus (optionally) the original source text, so
// diagnostics can still render a line snippet even though this module never
// parses that text itself (spec.md §1, §6).
//
// Command and Expr carry no `json` struct tags because the parser contract
// (spec.md §6) already names its fields in lowerCamelCase, which
// encoding/json's case-insensitive fallback matches against these Go
// field names without needing an explicit tag on every one.
type Program struct {
	Commands []*Command `json:"commands"`
	Source   string     `json:"source"`
}

// DecodeProgram unmarshals a Command Node contract document (spec.md §6).
func DecodeProgram(data []byte) (Program, error) {
	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return Program{}, err
	}
	return p, nil
}

// JSONParser implements engine.Parser (structurally; this package does not
// import engine) by treating "source" as a Command Node JSON document
// rather than REXX text. It exists for hosts that have no textual REXX
// grammar available to back INTERPRET/REQUIRE but still want those
// features exercisable — a real embedding with an actual lexer/parser
// supplies its own engine.Parser instead.
type JSONParser struct{}

func (JSONParser) Parse(source string) ([]*Command, error) {
	program, err := DecodeProgram([]byte(source))
	if err != nil {
		return nil, err
	}
	return program.Commands, nil
}
