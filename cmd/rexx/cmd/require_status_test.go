package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mathLibJSON is a command-node library: a detection label (MYMETA)
// declaring one exported function (ADD), then the ADD subroutine itself.
const mathLibJSON = `{
  "commands": [
    {"type":"LABEL","lineNumber":1,"labelName":"MYMETA"},
    {"type":"RETURN","lineNumber":2,"returnValue":{"kind":"MAPPING","pairs":[
      {"key":{"kind":"LITERAL","literal":"TYPE"},"value":{"kind":"LITERAL","literal":"functions"}},
      {"key":{"kind":"LITERAL","literal":"FUNCTIONS"},"value":{"kind":"SEQUENCE","elements":[{"kind":"LITERAL","literal":"ADD"}]}}
    ]}},
    {"type":"LABEL","lineNumber":3,"labelName":"ADD"},
    {"type":"RETURN","lineNumber":4,"returnValue":{"kind":"ARITHMETIC","operator":"+",
      "left":{"kind":"FUNCTION_CALL","funcName":"ARG","args":[{"kind":"LITERAL","literal":1}]},
      "right":{"kind":"FUNCTION_CALL","funcName":"ARG","args":[{"kind":"LITERAL","literal":2}]}}}
  ]
}`

const requireProgramJSON = `{
  "commands": [
    {"type":"FUNCTION_CALL","lineNumber":1,"expr":{"kind":"FUNCTION_CALL","funcName":"REQUIRE","args":[
      {"kind":"LITERAL","literal":"mymath"}
    ]}},
    {"type":"ASSIGNMENT","lineNumber":2,"variable":"SUM","expression":{"kind":"FUNCTION_CALL","funcName":"ADD","args":[
      {"kind":"LITERAL","literal":2},{"kind":"LITERAL","literal":3}
    ]}},
    {"type":"SAY","lineNumber":3,"sayExpression":{"kind":"VARIABLE","name":"SUM"}}
  ]
}`

func TestRequireStatusReportsLoadedLibrary(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mymath.rexx"), []byte(mathLibJSON), 0644); err != nil {
		t.Fatalf("failed to write library fixture: %v", err)
	}
	progPath := filepath.Join(dir, "program.json")
	if err := os.WriteFile(progPath, []byte(requireProgramJSON), 0644); err != nil {
		t.Fatalf("failed to write program fixture: %v", err)
	}

	oldBuiltinDir, oldPolicy := builtinDir, policyFlag
	builtinDir = dir
	policyFlag = "moderate"
	defer func() { builtinDir, policyFlag = oldBuiltinDir, oldPolicy }()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runRequireStatus(requireStatusCmd, []string{progPath})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Fatalf("runRequireStatus failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "mymath") {
		t.Fatalf("output = %q, want it to list mymath", output)
	}
	if !strings.Contains(output, "5") {
		t.Fatalf("output = %q, want the program's SAY of SUM=5 to appear", output)
	}
}
