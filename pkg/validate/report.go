package validate

import (
	"fmt"
	"io"

	"github.com/confgen-net/confgen/pkg/cli"
)

// Report collects validation findings in document order. Errors make the
// model undeployable; warnings are advisory and never affect validity.
type Report struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether validation found no errors.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Counts returns the number of errors and warnings.
func (r *Report) Counts() (errors, warnings int) {
	return len(r.Errors), len(r.Warnings)
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Render writes the report in human-readable form: warnings first, then
// errors, then a one-line verdict. Marks are colored when the output
// supports it.
func (r *Report) Render(w io.Writer) {
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", cli.Yellow("⚠"), warning)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", cli.Red("✗"), msg)
		}
		fmt.Fprintf(w, "%s validation failed: %d error(s)\n", cli.Red("✗"), len(r.Errors))
		return
	}
	fmt.Fprintln(w, cli.Green("✓")+" configuration is valid")
}
