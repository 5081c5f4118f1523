package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xraph/universe/types"
)

func defaultOpts(t *testing.T) *rootOptions {
	t.Helper()
	return &rootOptions{output: outputTable}
}

func TestProjectClaim(t *testing.T) {
	cfg, err := defaultOpts(t).loadConfig()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := project(cfg, cfg.PlanetCreationCost, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if r.Action != actionClaim || r.Reward != "40.000000000" || r.Locked != "1000.000000000" {
			t.Errorf("unexpected row %+v", r)
		}
	}
	if got := rows[2].Claimed; got != "120.000000000" {
		t.Errorf("claimed after 3 intervals = %s, want 120", got)
	}
}

func TestProjectCompoundStopsAtLadderGap(t *testing.T) {
	cfg, err := defaultOpts(t).loadConfig()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := project(cfg, cfg.PlanetCreationCost, 10, true)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		step   int
		action string
		level  int
		name   string
		locked string
	}{
		{1, actionCompound, 1, "Moon", "1040.000000000"},
		{2, actionCompound, 2, "Mercury", "1092.000000000"},
		{8, actionCompound, 8, "Neptune", ""},
		{9, actionClaim, 8, "Neptune", ""},
		{10, actionClaim, 8, "Neptune", ""},
	}
	for _, tt := range tests {
		r := rows[tt.step-1]
		if r.Action != tt.action || r.Level != tt.level || r.Name != tt.name {
			t.Errorf("step %d = %+v, want %s at %d %s", tt.step, r, tt.action, tt.level, tt.name)
		}
		if tt.locked != "" && r.Locked != tt.locked {
			t.Errorf("step %d locked = %s, want %s", tt.step, r.Locked, tt.locked)
		}
	}
	if rows[9].Claimed == "0.000000000" {
		t.Error("expected claims once the ladder ends")
	}
}

func TestProjectRejectsBadInput(t *testing.T) {
	cfg, err := defaultOpts(t).loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := project(cfg, 0, 3, false); err == nil {
		t.Error("expected error for zero locked amount")
	}
	if _, err := project(cfg, types.Tokens(1), 0, false); err == nil {
		t.Error("expected error for zero intervals")
	}
}

func TestSchedule(t *testing.T) {
	rows, err := schedule(types.Tokens(200_000_000), 365*24*60*60, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	want := []string{"0.000000000", "50000000.000000000", "100000000.000000000", "150000000.000000000", "200000000.000000000"}
	for i, r := range rows {
		if r.Claimable != want[i] {
			t.Errorf("row %d claimable = %s, want %s", i, r.Claimable, want[i])
		}
	}
}

func TestParamsCommand(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{outputTable, "reward_interval"},
		{outputYAML, "planet_creation_cost: \"1000.000000000\""},
		{outputJSON, "\"max_planets_per_user\": 10"},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&buf)
			cmd.SetArgs([]string{"params", "-o", tt.output})
			if err := cmd.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}
