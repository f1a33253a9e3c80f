// Package cli implements the bayframe command-line tool.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/config"
	"github.com/chazu/bayframe/pkg/engine"
	"github.com/chazu/bayframe/pkg/project"
)

// ErrChecksFailed is returned when a command's checks report errors.
var ErrChecksFailed = errors.New("checks failed")

type options struct {
	codeFile string
}

// RootCmd returns the bayframe command with every subcommand attached.
func RootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bayframe",
		Short: "Validate building configurations",
		Long: `bayframe checks a building project against its wall bounds, skylight
placement, wall-height code minimums, wall locks and partition layout.

FILE is either a project JSON document (.json) or a building script.

Examples:
  bayframe check shop.bay
  bayframe height shop.json --code code.yaml
  bayframe layout shop.bay --optimize`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.codeFile, "code", "", "YAML file of building-code overrides")

	root.AddCommand(checkCmd(opts))
	root.AddCommand(locksCmd(opts))
	root.AddCommand(heightCmd(opts))
	root.AddCommand(layoutCmd(opts))
	root.AddCommand(suggestCmd(opts))

	return root
}

func (o *options) code() (building.CodeRequirements, error) {
	return config.LoadCodeRequirements(o.codeFile)
}

// loadProject reads a project from a JSON document or evaluates a
// building script.
func loadProject(path string) (*project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return project.Decode(bytes.NewReader(data))
	}

	p, evalErrs, err := engine.NewEngine().Evaluate(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("%s: %s", path, strings.Join(msgs, "; "))
	}
	return p, nil
}

var (
	errMark  = color.New(color.FgRed).Sprint("✗")
	warnMark = color.New(color.FgYellow).Sprint("!")
	okMark   = color.New(color.FgGreen).Sprint("✓")
)

// printReport writes r's findings and returns ErrChecksFailed when r has
// errors.
func printReport(w io.Writer, title string, r building.Report) error {
	for _, e := range r.Errors {
		fmt.Fprintf(w, "%s %s\n", errMark, e)
	}
	for _, m := range r.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnMark, m)
	}
	if !r.Valid {
		fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n", title,
			len(r.Errors), len(r.Warnings))
		return ErrChecksFailed
	}
	fmt.Fprintf(w, "%s %s: ok (%d warning(s))\n", okMark, title, len(r.Warnings))
	return nil
}
