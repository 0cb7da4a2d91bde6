// Command recdata inspects a MovieLens collection: it loads the archive
// or directory, builds the entity-attribute dataset and prints a summary
// of classes, attributes and the interaction log.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/recdata/dataset"
	"github.com/katalvlaran/recdata/logging"
	"github.com/katalvlaran/recdata/movielens"
)

func main() {
	var (
		logLevel = pflag.String("log-level", "info", "zerolog level: trace, debug, info, warn, error")
		console  = pflag.Bool("console", true, "human-readable log output instead of JSON")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: recdata [flags] describe <movielens-path>\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 2 && args[0] == "describe" {
		args = args[1:]
	}
	if len(args) != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	logging.Setup(*logLevel, *console)

	if err := describe(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "recdata: %v\n", err)
		os.Exit(1)
	}
}

// describe loads the collection and prints its shape.
func describe(path string) error {
	src, err := movielens.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	ds, err := src.Dataset()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "format:\t%s\n", src.Format())
	for _, class := range ds.EntityClasses() {
		set, cerr := ds.Entities(class)
		if cerr != nil {
			return cerr
		}
		fmt.Fprintf(w, "class %s:\t%d entities\n", class, set.Len())
		for _, name := range set.AttributeNames() {
			acc, aerr := set.Attribute(name)
			if aerr != nil {
				return aerr
			}
			fmt.Fprintf(w, "  %s:\t%s %s\t%d/%d present", name,
				acc.Layout(), acc.ValueType(), acc.CountValid(), acc.Len())
			if acc.Width() > 0 {
				fmt.Fprintf(w, "\twidth %d", acc.Width())
			}
			fmt.Fprintln(w)
		}
	}
	printInteractions(w, ds.Interactions())
	return nil
}

func printInteractions(w *tabwriter.Writer, log *dataset.InteractionSet) {
	fmt.Fprintf(w, "interactions:\t%d\n", log.Len())
	if m := log.Matrix(); m != nil {
		r, c := m.Dims()
		density := float64(log.CSR().NNZ()) / float64(r*c)
		fmt.Fprintf(w, "rating matrix:\t%d x %d\t%.4f dense\n", r, c, density)
	}
}
