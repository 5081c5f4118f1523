package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
	"github.com/xraph/universe/types"
)

// epoch anchors offline simulations.
var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type projectionRow struct {
	Step    int    `json:"step" yaml:"step"`
	Action  string `json:"action" yaml:"action"`
	Level   int    `json:"level" yaml:"level"`
	Name    string `json:"name" yaml:"name"`
	Reward  string `json:"reward" yaml:"reward"`
	Locked  string `json:"locked" yaml:"locked"`
	Claimed string `json:"claimed" yaml:"claimed"`
}

const (
	actionClaim    = "claim"
	actionCompound = "compound"
)

// project simulates a planet collecting every reward interval. With
// compound set each reward is folded back while the ladder allows it and
// claimed once it does not.
func project(cfg *config.Config, locked types.Amount, intervals int, compound bool) ([]projectionRow, error) {
	if intervals <= 0 {
		return nil, fmt.Errorf("intervals must be positive, got %d", intervals)
	}
	if !locked.IsPositive() {
		return nil, fmt.Errorf("locked amount must be positive, got %s", locked)
	}

	now := epoch
	p := planet.New("simulation", locked, now)
	var claimed types.Amount

	rows := make([]projectionRow, 0, intervals)
	for step := 1; step <= intervals; step++ {
		now = now.Add(cfg.RewardIntervalDuration())
		reward, err := planet.Reward(p, cfg, now)
		if err != nil {
			return nil, err
		}

		action := actionClaim
		if compound {
			next, err := p.Compounded(reward, now)
			switch {
			case err == nil:
				p, action = next, actionCompound
			case !errors.Is(err, planet.ErrInvalidCompoundLevel):
				return nil, err
			}
		}
		if action == actionClaim {
			if claimed, err = claimed.Add(reward); err != nil {
				return nil, err
			}
			p = p.Claimed(now)
		}

		rows = append(rows, projectionRow{
			Step:    step,
			Action:  action,
			Level:   p.CompoundLevel,
			Name:    p.Name,
			Reward:  reward.FormatMajor(),
			Locked:  p.LockedTokens.FormatMajor(),
			Claimed: claimed.FormatMajor(),
		})
	}
	return rows, nil
}

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var (
		locked    string
		intervals int
		compound  bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project planet rewards over reward intervals",
		Long: `Project simulates a freshly created planet that collects its reward
at the end of every interval. By default rewards are claimed; with
--compound they are folded into the planet, climbing the tier ladder
until no next tier exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			amount := cfg.PlanetCreationCost
			if locked != "" {
				if amount, err = types.ParseAmount(locked); err != nil {
					return err
				}
			}
			rows, err := project(cfg, amount, intervals, compound)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), rows, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "STEP\tACTION\tTIER\tREWARD\tLOCKED\tCLAIMED")
				for _, r := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%d %s\t%s\t%s\t%s\n",
						r.Step, r.Action, r.Level, r.Name, r.Reward, r.Locked, r.Claimed)
				}
			})
		},
	}

	cmd.Flags().StringVar(&locked, "locked", "", "tokens locked in the planet (default: planet creation cost)")
	cmd.Flags().IntVar(&intervals, "intervals", 10, "number of reward intervals to simulate")
	cmd.Flags().BoolVar(&compound, "compound", false, "compound rewards instead of claiming them")
	return cmd
}
