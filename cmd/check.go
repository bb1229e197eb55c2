package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rj25031/FCH-pyomo/config"
	"github.com/rj25031/FCH-pyomo/core/compile"
	"github.com/rj25031/FCH-pyomo/core/milp"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the problem and print model statistics without solving",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	problem, err := cfg.Problem.Build()
	if err != nil {
		return fmt.Errorf("build problem: %w", err)
	}
	mdl, _, err := compile.Build(problem)
	if err != nil {
		return fmt.Errorf("compile model: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "problem: %d machines, %d tasks, %d-day horizon\n",
		len(problem.Machines), len(problem.Tasks), problem.HorizonDays)
	fmt.Fprintf(cmd.OutOrStdout(), "symbolic model: %s\n", mdl.Stats())
	if err := milp.ApplyBigM(mdl, compile.BigM(problem)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "lowered model: %s\n", mdl.Stats())
	return nil
}
