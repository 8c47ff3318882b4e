package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sablefmt/internal/diag"
	"sablefmt/internal/diagfmt"
	"sablefmt/internal/lexer"
	"sablefmt/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the token stream of one file (debug)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("trivia", false, "also dump attached trivia")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	showTrivia, _ := cmd.Flags().GetBool("trivia")
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	file := fs.Get(id)

	bag := diag.NewBag(maxDiag)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	for _, tok := range lx.All() {
		start, _ := fs.Resolve(tok.Span)
		if showTrivia {
			for _, tr := range tok.Leading {
				fmt.Printf("  %-12s %q\n", tr.Kind, tr.Text)
			}
		}
		fmt.Printf("%4d:%-3d %-12s %q\n", start.Line, start.Col, tok.Kind, tok.Text)
	}

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Text(os.Stderr, bag, fs, diagfmt.TextOpts{
			Color:      colored,
			ShowSource: true,
		})
	}
	if bag.HasErrors() {
		return fmt.Errorf("tokenize: lexical errors in %s", args[0])
	}
	return nil
}
