package cli

import (
	"fmt"

	"github.com/akolanti/SDKAssistant/internal/evaluation"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Grade the assistant on a labelled question set",
	Long: `Answers every question of the dataset with a fresh agent and asks a judge model whether
the answer is correct against the reference. Exits non-zero when any answer fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		datasetPath, _ := cmd.Flags().GetString("dataset")
		items := evaluation.DefaultDataset()
		if datasetPath != "" {
			var err error
			if items, err = evaluation.LoadDataset(datasetPath); err != nil {
				return err
			}
		}

		c := newContainer(cmd)
		judge, err := c.ChatModel()
		if err != nil {
			return err
		}
		report, err := evaluation.New(c.NewAgent, judge).Run(cmd.Context(), items)
		if err != nil {
			return err
		}

		for _, result := range report.Results {
			cmd.Printf("[%s] %s\n", result.Value, result.Input)
		}
		cmd.Printf("Average score: %.2f\n%d results evaluated, %d failures.\n", report.Mean, len(report.Results), report.Failures)
		if report.Failures > 0 {
			return fmt.Errorf("%d of %d answers failed", report.Failures, len(report.Results))
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().String("dataset", "", "JSON array of {input, reference}, defaults to the built in set")
	rootCmd.AddCommand(evaluateCmd)
}
