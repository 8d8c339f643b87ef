// Command flaggen expands a TOML flag declaration into a Go source file
// defining typed constants and a ready bitflags.Def. It is meant to be run
// through go generate:
//
//	//go:generate flaggen gen perm.toml -o perm_gen.go
package main

import (
	"os"
	"strings"

	"bitflags"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	output  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "flaggen",
	Short:         "generate typesafe bitmask flag-set types",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var genCmd = &cobra.Command{
	Use:   "gen <decl.toml>",
	Short: "expand a flag declaration file into Go source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decl, err := bitflags.LoadDecl(args[0])
		if err != nil {
			return err
		}
		if verbose {
			log.WithFields(log.Fields{
				"package": decl.Package,
				"type":    decl.Type,
				"width":   decl.Width,
				"flags":   len(decl.Flags),
			}).Info("loaded declaration")
		}
		src, err := decl.Generate()
		if err != nil {
			return err
		}
		out := output
		if out == "" {
			out = strings.TrimSuffix(args[0], ".toml") + "_gen.go"
		}
		if err := os.WriteFile(out, src, 0644); err != nil {
			return err
		}
		if verbose {
			log.WithField("file", out).Info("wrote generated source")
		}
		return nil
	},
}

func main() {
	genCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <decl>_gen.go)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress")
	rootCmd.AddCommand(genCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
