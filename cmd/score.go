package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/readiness-assessment/internal/engine"
	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/SAP-F-2025/readiness-assessment/internal/validator"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a set of quick-quiz answers",
	Example: `  readiness-assessment score --has-apis most --data-access instant \
    --process-documentation documented --automation-experience advanced \
    --main-blocker "Budget/resources beperkt"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		hasApis, _ := flags.GetString("has-apis")
		dataAccess, _ := flags.GetString("data-access")
		processDocumentation, _ := flags.GetString("process-documentation")
		automationExperience, _ := flags.GetString("automation-experience")
		mainBlocker, _ := flags.GetString("main-blocker")
		asJSON, _ := flags.GetBool("json")

		answers := models.QuickQuizAnswers{
			HasApis:              models.ApiAvailability(hasApis),
			DataAccess:           models.DataAccess(dataAccess),
			ProcessDocumentation: models.ProcessDocumentation(processDocumentation),
			AutomationExperience: models.AutomationExperience(automationExperience),
			MainBlocker:          models.MainBlocker(mainBlocker),
		}
		if err := validator.New().Validate(answers); err != nil {
			return err
		}

		score, level := engine.ScoreAndClassify(answers)
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
				"score": score,
				"level": level,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/100\nNiveau: %s\n", score, level)
		return nil
	},
}

func init() {
	scoreCmd.Flags().String("has-apis", "", "most, some, unknown or none")
	scoreCmd.Flags().String("data-access", "", "instant, minutes, difficult or impossible")
	scoreCmd.Flags().String("process-documentation", "", "documented, partially, tribal or chaos")
	scoreCmd.Flags().String("automation-experience", "", "advanced, basic, trying or none")
	scoreCmd.Flags().String("main-blocker", "", "Main blocker phrase")
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
}
