package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rexxgo/rexxcore/internal/engine"
	"github.com/rexxgo/rexxcore/pkg/ast"
	"github.com/spf13/cobra"
)

var requireStatusCmd = &cobra.Command{
	Use:   "require-status <commands.json>",
	Short: "Run a program and report its resolved REQUIRE dependency graph",
	Long: `Runs the given command-node program the same way "run" does, then
prints every library REQUIRE loaded along the way: its resolved version,
its source, and its direct dependencies (SPEC_FULL.md's status/listing
enrichment of C9).`,
	Args: cobra.ExactArgs(1),
	RunE: runRequireStatus,
}

func init() {
	rootCmd.AddCommand(requireStatusCmd)
}

func runRequireStatus(_ *cobra.Command, args []string) error {
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
		engine.WithScriptDir(filepath.Dir(path)),
		engine.WithSecurityGate(policy, env),
		engine.WithRequireLadder(ladder),
		engine.WithParser(jsonCommandParser{}),
	)

	if _, err := e.Run(program.Commands, program.Source, path); err != nil {
		return fmt.Errorf("%w", err)
	}

	status := e.RequireStatus()
	if len(status) == 0 {
		fmt.Println("no libraries loaded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSOURCE\tDEPENDENCIES")
	for _, s := range status {
		version := s.Version
		if version == "" {
			version = "-"
		}
		source := s.Source
		if source == "" {
			source = "-"
		}
		deps := "-"
		if len(s.Dependencies) > 0 {
			deps = fmt.Sprint(s.Dependencies)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, version, source, deps)
	}
	return w.Flush()
}
