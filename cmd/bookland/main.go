// Command bookland draws a Bookland EAN barcode for an ISBN or ISMN as an
// EPS file.
//
//     bookland [flags] [isbn [price]]
//
// With no arguments, it draws ISBN 1-56592-197-6 with price code 90000. An
// ISBN without a price gets 90000, meaning no suggested price; pass an empty
// or blank price to leave the add-on off. An ISMN never has an add-on.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ean"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ident"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/internal/logging"
	"github.com/pkg/errors"
)

// defaultISBN is Mark Lutz, "Programming Python", O'Reilly, 1996.
const defaultISBN = "1-56592-197-6"

// CLI defines the command-line interface for bookland.
type CLI struct {
	Font      string           `short:"f" placeholder:"NAME" help:"PostScript font for all text (default OCRB)."`
	QuietZone bool             `short:"z" name:"quietzone" help:"Draw a '>' marking the quiet zone right of the price code."`
	Check     bool             `short:"x" help:"Only validate the ISBN or ISMN and the price code; don't draw anything."`
	Height    float64          `short:"s" default:"1" help:"Bar height multiplier."`
	Reduction float64          `short:"r" default:"0" help:"Bar width reduction in inches, to compensate for ink spread."`
	Outfile   string           `short:"o" type:"path" help:"Write the EPS file here instead of to stdout."`
	LogLevel  string           `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})."`
	LogFormat string           `name:"log-format" default:"text" enum:"text,json" help:"Log format (${enum})."`
	Version   kong.VersionFlag `short:"v" help:"Print version information and exit."`

	Args []string `arg:"" optional:"" name:"isbn" help:"ISBN or ISMN, optionally followed by the 5-digit price code."`
}

// Output holds where a run writes.
type Output struct {
	Stdout, Stderr io.Writer
	CommandLine    string
}

func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("bookland"),
		kong.Description("Draw a Bookland EAN barcode for an ISBN or ISMN as EPS."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{"version": "bookland " + bookland.Version},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
}

// inputs returns the identifier and price code from the positional args.
func (c *CLI) inputs() (isbn, price string, err error) {
	switch len(c.Args) {
	case 0:
		return defaultISBN, bookland.DefaultAddOn, nil
	case 1:
		isbn = c.Args[0]
		id, err := ident.Parse(isbn)
		if err == nil && id.Kind() == ident.ISBN {
			price = bookland.DefaultAddOn
		}
		return isbn, price, nil
	case 2:
		return c.Args[0], c.Args[1], nil
	}
	return "", "", errors.Errorf("expected at most 2 arguments (isbn and price), but got %d",
		len(c.Args))
}

// Run checks or draws the barcode.
func (c *CLI) Run(out *Output) error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(out.Stderr, level, format)

	isbn, price, err := c.inputs()
	if err != nil {
		return err
	}

	if c.Check {
		id, err := bookland.Check(isbn)
		if err != nil {
			logging.RequestFailed(isbn, err)
			return err
		}
		a, hasAddOn, err := ean.AddOnFor(id, price)
		if err != nil {
			logging.RequestFailed(isbn, err, "price", price)
			return err
		}
		n, err := ean.Derive(id)
		if err != nil {
			return err
		}
		if hasAddOn {
			_, err = fmt.Fprintf(out.Stdout, "%s is valid (EAN-13 %s, add-on %s)\n",
				id.Label(), n, a)
			return err
		}
		_, err = fmt.Fprintf(out.Stdout, "%s is valid (EAN-13 %s)\n", id.Label(), n)
		return err
	}

	opts := bookland.DefaultOptions()
	opts.Font = c.Font
	opts.QuietZone = c.QuietZone
	opts.HeightMultiplier = c.Height
	opts.BarWidthReduction = c.Reduction
	opts.CommandLine = out.CommandLine

	doc, err := bookland.Generate(isbn, price, opts)
	if err != nil {
		logging.RequestFailed(isbn, err, "price", price)
		return err
	}

	if c.Outfile == "" {
		_, err = doc.WriteTo(out.Stdout)
		return err
	}
	if err := writeFile(c.Outfile, doc); err != nil {
		return err
	}
	logging.Info("output_written", "path", c.Outfile)
	_, err = fmt.Fprintf(out.Stderr, "Output written to %s\n", c.Outfile)
	return err
}

func writeFile(path string, doc *bookland.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close %s", path)
		}
	}()
	_, err = doc.WriteTo(f)
	return err
}

func main() {
	var cli CLI
	parser, err := newParser(&cli, os.Stdout, os.Stderr, os.Exit)
	if err != nil {
		panic(err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = cli.Run(&Output{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		CommandLine: strings.Join(os.Args, " "),
	})
	parser.FatalIfErrorf(err)
}
