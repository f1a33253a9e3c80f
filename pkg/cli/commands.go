package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/check"
	"github.com/chazu/bayframe/pkg/feature"
	"github.com/chazu/bayframe/pkg/height"
	"github.com/chazu/bayframe/pkg/layout"
	"github.com/chazu/bayframe/pkg/lock"
	"github.com/chazu/bayframe/pkg/skylight"
)

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Run every check over a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := opts.code()
			if err != nil {
				return err
			}
			p, err := loadProject(args[0])
			if err != nil {
				return err
			}

			res := check.Run(p, &code)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %gx%gx%g ft, %d feature(s), %d skylight(s)\n",
				displayName(p.Name), p.Dimensions.Width, p.Dimensions.Length, p.Dimensions.Height,
				len(p.Features), len(p.Skylights))
			return printReport(out, "check", res.Report)
		},
	}
}

func locksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locks FILE",
		Short: "Show the wall intervals locked by features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			prot := lock.ProtectAll(p.Features, p.Dimensions)
			for _, w := range building.AllWalls {
				wp := prot[w]
				fmt.Fprintf(out, "%-5s wall: %.2fft, %.2fft locked, %.2fft available\n",
					w, wp.WallLength, wp.TotalLockedLength, wp.AvailableLength)
				for _, l := range wp.Locks {
					fmt.Fprintf(out, "  %s %.2f-%.2f (%s)\n", l.ID, l.StartPosition, l.EndPosition, l.LockType)
				}
				for _, r := range wp.Restrictions {
					fmt.Fprintf(out, "  %s %s\n", warnMark, r)
				}
			}
			return nil
		},
	}
}

func heightCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "height FILE",
		Short: "Derive the minimum wall height and check the building against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := opts.code()
			if err != nil {
				return err
			}
			p, err := loadProject(args[0])
			if err != nil {
				return err
			}

			res := height.ValidateWallHeights(p.Dimensions, p.Features, &code)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Minimum wall height: %.2fft (%s)\n",
				res.Requirement.FinalMinimum, building.FormatFeetInches(res.Requirement.FinalMinimum))
			for _, f := range res.Requirement.ContributingFactors {
				fmt.Fprintf(out, "  - %s\n", f)
			}
			fmt.Fprintf(out, "Opening ratio: %.0f%%\n", res.OpeningRatio*100)
			return printReport(out, "height", res.Report)
		},
	}
}

func layoutCmd(opts *options) *cobra.Command {
	var optimize bool

	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Validate the interior partition layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(args[0])
			if err != nil {
				return err
			}
			if p.Layout == nil {
				return errors.New("project has no room layout")
			}

			out := cmd.OutOrStdout()
			l := *p.Layout
			if optimize {
				opt := layout.OptimizeWallLayout(l)
				if opt.Optimized {
					fmt.Fprintf(out, "Scaled by %.4f\n", opt.ScaleFactor)
					for _, c := range opt.Changes {
						fmt.Fprintf(out, "  - %s\n", c)
					}
				} else {
					fmt.Fprintln(out, "Layout already fits; nothing to optimize")
				}
				l = opt.Layout
			}

			res := layout.ValidateWallPositioning(l)
			m := res.Measurements
			fmt.Fprintf(out, "Room %s: %s used, %s remaining (%.0f%%)\n",
				building.FormatFeetInches(l.RoomWidth), building.FormatFeetInches(m.UsedSpace),
				building.FormatFeetInches(m.RemainingSpace), m.Utilization*100)
			return printReport(out, "layout", res.Report)
		},
	}
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Scale an over-capacity layout to fit before validating")

	return cmd
}

func suggestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest FILE",
		Short: "Suggest in-bounds placements for features and skylights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			moved := 0
			for _, f := range p.Features {
				sg := feature.SuggestPosition(f, p.Dimensions)
				if len(sg.Adjustments) == 0 {
					continue
				}
				moved++
				fmt.Fprintf(out, "%s: x %.2f, y %.2f, %.2f x %.2f\n", color.New(color.FgCyan).Sprint(f.Label()),
					sg.SuggestedXOffset, sg.SuggestedYOffset, sg.SuggestedWidth, sg.SuggestedHeight)
				for _, a := range sg.Adjustments {
					fmt.Fprintf(out, "  - %s\n", a)
				}
			}
			for i, s := range p.Skylights {
				sg := skylight.SuggestPosition(s, p.Dimensions)
				if len(sg.Adjustments) == 0 {
					continue
				}
				moved++
				fmt.Fprintf(out, "%s: x %.2f, y %.2f, %.2f x %.2f\n",
					color.New(color.FgCyan).Sprintf("skylight %d", i+1),
					sg.SuggestedXOffset, sg.SuggestedYOffset, sg.SuggestedWidth, sg.SuggestedLength)
				for _, a := range sg.Adjustments {
					fmt.Fprintf(out, "  - %s\n", a)
				}
			}
			if moved == 0 {
				fmt.Fprintf(out, "%s everything is already in bounds\n", okMark)
			}
			return nil
		},
	}
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
