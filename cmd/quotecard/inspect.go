package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	quotecard "github.com/alnah/go-quotecard"
)

// maxBundleSize bounds the archive read by inspect.
const maxBundleSize = 64 << 20

// runInspect prints what a bundle would show when opened in a browser.
func runInspect(args []string, env *Environment) error {
	jsonOutput, positional, err := parseInspectFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printInspectUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: inspect needs exactly one bundle path", ErrUsage)
	}

	data, err := readBundle(positional[0])
	if err != nil {
		return err
	}

	report, err := quotecard.InspectBundle(data)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(env.Stdout, report)
	if len(report.MissingFonts) > 0 {
		return fmt.Errorf("%w: missing font entries: %v", quotecard.ErrInvalidBundle, report.MissingFonts)
	}
	return nil
}

func readBundle(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBundleSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBundleSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", quotecard.ErrInvalidBundle, maxBundleSize)
	}
	return data, nil
}

func printReport(w io.Writer, r *quotecard.BundleReport) {
	fmt.Fprintln(w, "Entries")
	for _, e := range r.Entries {
		fmt.Fprintf(w, "  %s\n", e)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Card")
	if r.HasHeading {
		fmt.Fprintf(w, "  heading:     %q\n", r.Heading)
	} else {
		fmt.Fprintln(w, "  heading:     (none)")
	}
	fmt.Fprintf(w, "  body:        %q\n", r.Body)
	if r.HasFooter {
		fmt.Fprintf(w, "  footer:      %q\n", r.Footer)
	} else {
		fmt.Fprintln(w, "  footer:      (none)")
	}
	fmt.Fprintf(w, "  background:  %s\n", r.Background)
	fmt.Fprintf(w, "  foreground:  %s\n", r.Foreground)
	fmt.Fprintf(w, "  white-space: %s\n", r.WhiteSpace)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Font %q\n", r.FontFamily)
	missing := map[string]bool{}
	for _, m := range r.MissingFonts {
		missing[m] = true
	}
	for _, f := range r.Fonts {
		status := "[OK]"
		if missing[f.URL] {
			status = "[MISSING]"
		}
		fmt.Fprintf(w, "  %-9s %s (%s)\n", status, f.URL, f.Format)
	}
}
