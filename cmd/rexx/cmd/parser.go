package cmd

import "github.com/rexxgo/rexxcore/pkg/ast"

// jsonCommandParser adapts ast.JSONParser to this CLI's REQUIRE/INTERPRET
// wiring — see ast.JSONParser's doc comment for why a Command Node JSON
// parser stands in for a textual REXX grammar here.
type jsonCommandParser = ast.JSONParser
