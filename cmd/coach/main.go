package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/service"
)

// coach es una CLI offline para generar planes desde fixtures JSON,
// sin base de datos ni LLM. Útil para probar el motor y armar demos.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coach",
		Short:         "Generate dog training plans from JSON fixtures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlanCmd())
	return root
}

func newPlanCmd() *cobra.Command {
	var dogPath, prefsPath, catalogPath, breedPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a training plan and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, dogPath, prefsPath, catalogPath, breedPath)
		},
	}

	cmd.Flags().StringVar(&dogPath, "dog", "", "Path to the dog profile JSON (required)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the exercise catalog JSON (required)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Path to the owner preferences JSON")
	cmd.Flags().StringVar(&breedPath, "breed", "", "Path to the breed profile JSON")
	_ = cmd.MarkFlagRequired("dog")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func runPlan(cmd *cobra.Command, dogPath, prefsPath, catalogPath, breedPath string) error {
	var input service.PlanInput

	if err := readJSON(dogPath, &input.Animal); err != nil {
		return fmt.Errorf("read dog profile: %w", err)
	}
	if err := readJSON(catalogPath, &input.Catalog); err != nil {
		return fmt.Errorf("read exercise catalog: %w", err)
	}
	if prefsPath != "" {
		var prefs domain.OwnerPreferences
		if err := readJSON(prefsPath, &prefs); err != nil {
			return fmt.Errorf("read preferences: %w", err)
		}
		input.Preferences = &prefs
	}
	if breedPath != "" {
		var breed domain.BreedProfile
		if err := readJSON(breedPath, &breed); err != nil {
			return fmt.Errorf("read breed profile: %w", err)
		}
		input.Breed = &breed
	}

	plan := service.GeneratePlan(input)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
