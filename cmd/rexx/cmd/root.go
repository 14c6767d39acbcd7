package cmd

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/security"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose     bool
	policyFlag  string
	envFlag     string
	searchPaths []string
)

var rootCmd = &cobra.Command{
	Use:   "rexx",
	Short: "REXX-family scripting engine",
	Long: `rexx runs command-node programs against the REXX core engine.

This engine executes an already-parsed flat sequence of command nodes (the
Command Node contract); it does not itself lex or parse REXX source text.
"run" reads that sequence from a JSON file produced by a host-supplied
parser.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", string(security.PolicyDefault), "REQUIRE security policy: strict|moderate|default|permissive")
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", string(security.EnvLocalNode), "host environment: local-node|web-standalone|control-bus-orchestrated|remote")
	rootCmd.PersistentFlags().StringSliceVar(&searchPaths, "require-path", nil, "additional directories to search for REQUIRE targets")
}

func gateFromFlags() (security.Policy, security.Environment) {
	return security.Policy(policyFlag), security.Environment(envFlag)
}
