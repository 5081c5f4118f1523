package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xraph/universe/config"
	"github.com/xraph/universe/planet"
)

type paramsView struct {
	PlanetCreationCost string        `json:"planet_creation_cost" yaml:"planet_creation_cost"`
	MaxPlanetsPerUser  int           `json:"max_planets_per_user" yaml:"max_planets_per_user"`
	RewardRate         int64         `json:"reward_rate" yaml:"reward_rate"`
	RewardInterval     int64         `json:"reward_interval" yaml:"reward_interval"`
	TransactionTaxRate int64         `json:"transaction_tax_rate" yaml:"transaction_tax_rate"`
	LiquidityTaxRate   int64         `json:"liquidity_tax_rate" yaml:"liquidity_tax_rate"`
	RewardTaxRate      int64         `json:"reward_tax_rate" yaml:"reward_tax_rate"`
	NFTTransferTaxRate int64         `json:"nft_transfer_tax_rate" yaml:"nft_transfer_tax_rate"`
	TeamNFTTaxRate     int64         `json:"team_nft_tax_rate" yaml:"team_nft_tax_rate"`
	RewardNFTTaxRate   int64         `json:"reward_nft_tax_rate" yaml:"reward_nft_tax_rate"`
	VestingDuration    int64         `json:"vesting_duration" yaml:"vesting_duration"`
	Ladder             []planet.Tier `json:"ladder" yaml:"ladder"`
}

func viewParams(cfg *config.Config) paramsView {
	return paramsView{
		PlanetCreationCost: cfg.PlanetCreationCost.FormatMajor(),
		MaxPlanetsPerUser:  cfg.MaxPlanetsPerUser,
		RewardRate:         cfg.RewardRate,
		RewardInterval:     cfg.RewardInterval,
		TransactionTaxRate: cfg.TransactionTaxRate,
		LiquidityTaxRate:   cfg.LiquidityTaxRate,
		RewardTaxRate:      cfg.RewardTaxRate,
		NFTTransferTaxRate: cfg.NFTTransferTaxRate,
		TeamNFTTaxRate:     cfg.TeamNFTTaxRate,
		RewardNFTTaxRate:   cfg.RewardNFTTaxRate,
		VestingDuration:    cfg.EcosystemVestingDuration,
		Ladder:             planet.Ladder(),
	}
}

func newParamsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the effective game parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			v := viewParams(cfg)
			return opts.render(cmd.OutOrStdout(), v, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "planet_creation_cost\t%s\n", v.PlanetCreationCost)
				fmt.Fprintf(tw, "max_planets_per_user\t%d\n", v.MaxPlanetsPerUser)
				fmt.Fprintf(tw, "reward_rate\t%d\n", v.RewardRate)
				fmt.Fprintf(tw, "reward_interval\t%ds\n", v.RewardInterval)
				fmt.Fprintf(tw, "transaction_tax\t%d%% (liquidity %d%%, reward %d%%)\n",
					v.TransactionTaxRate, v.LiquidityTaxRate, v.RewardTaxRate)
				fmt.Fprintf(tw, "nft_transfer_tax\t%d%% (team %d%%, reward %d%%)\n",
					v.NFTTransferTaxRate, v.TeamNFTTaxRate, v.RewardNFTTaxRate)
				fmt.Fprintf(tw, "vesting_duration\t%ds\n", v.VestingDuration)
				for _, t := range v.Ladder {
					fmt.Fprintf(tw, "tier %d\t%s (%d%%/interval)\n", t.Level, t.Name, t.DailyReward)
				}
			})
		},
	}
}
