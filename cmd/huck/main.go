// Command huck is Huckleberry's command-line entry point: zero arguments
// starts the REPL, one argument reads and evaluates a file, and anything
// else is a usage error. Grounded on the teacher's cli/main.go cobra setup,
// stripped of everything downstream of "evaluate source against an env".
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pearigee/huckleberry/internal/color"
	"github.com/pearigee/huckleberry/internal/core"
	"github.com/pearigee/huckleberry/internal/display"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/repl"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run builds and executes the cobra command against args, returning the
// process exit code instead of calling os.Exit directly - kept separate
// from main so tests can drive it against in-memory streams, the same
// split the teacher's main/runCommand pair uses.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var noColor bool
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:           "huck [script]",
		Short:         "Run the Huckleberry interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, cmdArgs []string) error {
			if len(cmdArgs) > 1 {
				fmt.Fprintln(stdout, "Usage: huck [script]")
				exitCode = 64
				return fmt.Errorf("too many arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			useColor := color.ShouldUse(noColor)
			env, err := core.NewRootEnv()
			if err != nil {
				display.FormatError(stderr, "", err, useColor)
				exitCode = 1
				return nil
			}

			if len(cmdArgs) == 0 {
				exitCode = repl.Run(stdin, stdout, env, useColor)
				return nil
			}

			path := cmdArgs[0]
			src, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(stderr, "huck: %s: %v\n", path, err)
				exitCode = 1
				return nil
			}
			if _, err := eval.Eval(string(src), env); err != nil {
				display.FormatError(stderr, string(src), err, useColor)
				exitCode = 1
				return nil
			}
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored error output")
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil && exitCode == 0 {
		exitCode = 1
	}
	return exitCode
}
