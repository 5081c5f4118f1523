package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xraph/universe/types"
	"github.com/xraph/universe/vesting"
)

type scheduleRow struct {
	Elapsed   string `json:"elapsed" yaml:"elapsed"`
	Percent   int64  `json:"percent" yaml:"percent"`
	Claimable string `json:"claimable" yaml:"claimable"`
}

// schedule samples the linear release of total at steps evenly spaced
// points across duration seconds.
func schedule(total types.Amount, duration int64, steps int) ([]scheduleRow, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	rows := make([]scheduleRow, 0, steps+1)
	for i := 0; i <= steps; i++ {
		elapsed := duration * int64(i) / int64(steps)
		amt, err := vesting.Claimable(total, epoch, duration, epoch.Add(time.Duration(elapsed)*time.Second))
		if err != nil {
			return nil, err
		}
		rows = append(rows, scheduleRow{
			Elapsed:   (time.Duration(elapsed) * time.Second).String(),
			Percent:   int64(100 * i / steps),
			Claimable: amt.FormatMajor(),
		})
	}
	return rows, nil
}

func newVestingCmd(opts *rootOptions) *cobra.Command {
	var (
		total string
		steps int
	)

	cmd := &cobra.Command{
		Use:   "vesting",
		Short: "Show the linear vesting release schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			amount, err := types.ParseAmount(total)
			if err != nil {
				return err
			}
			rows, err := schedule(amount, cfg.EcosystemVestingDuration, steps)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), rows, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ELAPSED\tPROGRESS\tCLAIMABLE")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%d%%\t%s\n", r.Elapsed, r.Percent, r.Claimable)
				}
			})
		},
	}

	cmd.Flags().StringVar(&total, "total", "200000000", "tokens allocated to the track")
	cmd.Flags().IntVar(&steps, "steps", 4, "number of sample points after the start")
	return cmd
}
