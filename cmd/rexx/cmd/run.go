package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rexxgo/rexxcore/internal/engine"
	"github.com/rexxgo/rexxcore/internal/require"
	"github.com/rexxgo/rexxcore/pkg/ast"
	"github.com/spf13/cobra"
)

var (
	builtinDir string
	digits     int
)

var runCmd = &cobra.Command{
	Use:   "run <commands.json>",
	Short: "Run a command-node program",
	Long: `Execute a Command Node document produced by a host-supplied REXX
parser (spec.md §3, §6). This engine does not lex or parse REXX source
text itself; "run" reads the already-parsed command sequence as JSON.

Examples:
  rexx run program.json
  rexx run --policy moderate --require-path ./lib program.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&builtinDir, "builtin-dir", "", "directory of co-located builtin libraries REQUIRE may load")
	runCmd.Flags().IntVar(&digits, "digits", 9, "initial NUMERIC DIGITS setting")
}

func runProgram(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	program, err := ast.DecodeProgram(data)
	if err != nil {
		return fmt.Errorf("decoding command-node document %s: %w", path, err)
	}

	policy, env := gateFromFlags()
	ladder := buildLadder(filepath.Dir(path))

	e := engine.New(
		engine.WithOutput(os.Stdout),
		engine.WithDigits(digits),
		engine.WithScriptDir(filepath.Dir(path)),
		engine.WithSecurityGate(policy, env),
		engine.WithRequireLadder(ladder),
		engine.WithParser(jsonCommandParser{}),
	)

	if _, err := e.Run(program.Commands, program.Source, path); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// buildLadder assembles the REQUIRE resolution ladder from this run's CLI
// flags: a builtin-directory resolver first (if --builtin-dir was given),
// then a local-path resolver over --require-path plus the script's own
// directory, matching spec.md §4.8 step 6's ladder ordering.
func buildLadder(scriptDir string) require.Ladder {
	var ladder require.Ladder

	if builtinDir != "" {
		libs, err := loadBuiltinDir(builtinDir)
		if err == nil {
			ladder = append(ladder, require.NewBuiltinResolver(libs))
		} else if verbose {
			fmt.Fprintf(os.Stderr, "warning: --builtin-dir %s: %v\n", builtinDir, err)
		}
	}

	paths := append([]string{scriptDir}, searchPaths...)
	ladder = append(ladder, require.NewLocalPathResolver(paths))
	return ladder
}

// loadBuiltinDir reads every .rexx/.rx file directly inside dir into a
// name->source table, keyed by filename without extension.
func loadBuiltinDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	libs := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".rexx" && ext != ".rx" {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(ext)]
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		libs[name] = string(data)
	}
	return libs, nil
}
