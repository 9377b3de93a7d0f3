package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/app/session"
	"github.com/nutriquest-app/nutriquest/internal/daemon"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

func init() {
	logFoodCmd.Flags().Float64Var(&foodCalories, "cal", 0, "Calories (kcal)")
	logFoodCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein (g)")
	logFoodCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbohydrates (g)")
	logFoodCmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat (g)")
	logFoodCmd.Flags().Float64Var(&foodSugar, "sugar", 0, "Sugar (g)")
	logFoodCmd.Flags().Float64Var(&foodSodium, "sodium", 0, "Sodium (mg)")
	logFoodCmd.Flags().Float64Var(&foodGrams, "grams", 0, "Portion weight (g)")
	logFoodCmd.Flags().StringVar(&foodCategory, "category", "", "Meal slot (breakfast|lunch|dinner|snack)")
	logFoodCmd.Flags().BoolVar(&foodClean, "clean", false, "Whole, unprocessed food")
	logFoodCmd.Flags().BoolVar(&foodComposite, "composite", false, "Saved combo meal")

	logExerciseCmd.Flags().Float64Var(&exerciseMin, "min", 30, "Duration in minutes")
	logExerciseCmd.Flags().StringVar(&exerciseCategory, "category", "cardio", "Exercise class")

	logCmd.AddCommand(logFoodCmd)
	logCmd.AddCommand(logPresetCmd)
	logCmd.AddCommand(logExerciseCmd)
	logCmd.AddCommand(logWaterCmd)
	rootCmd.AddCommand(logCmd)
}

var (
	foodCalories  float64
	foodProtein   float64
	foodCarbs     float64
	foodFat       float64
	foodSugar     float64
	foodSodium    float64
	foodGrams     float64
	foodCategory  string
	foodClean     bool
	foodComposite bool

	exerciseMin      float64
	exerciseCategory string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log food, exercise or water",
}

var logFoodCmd = &cobra.Command{
	Use:   "food NAME",
	Short: "Log a meal and strike the day's monster",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogFood,
}

var logPresetCmd = &cobra.Command{
	Use:   "preset NAME",
	Short: "Log a preset food from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogPreset,
}

var logExerciseCmd = &cobra.Command{
	Use:   "exercise NAME",
	Short: "Log a workout and heal your hero",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogExercise,
}

var logWaterCmd = &cobra.Command{
	Use:   "water ML",
	Short: "Log water intake",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogWater,
}

func runLogFood(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.Session.LogFood(session.FoodInput{
		Name:     args[0],
		Category: foodCategory,
		Macros: domain.Macros{
			Calories: foodCalories,
			Protein:  foodProtein,
			Carbs:    foodCarbs,
			Fat:      foodFat,
			Sugar:    foodSugar,
			SodiumMg: foodSodium,
		},
		Grams:     foodGrams,
		Clean:     foodClean,
		Composite: foodComposite,
	})
	if err != nil {
		return err
	}

	printBattle(entry)
	return nil
}

func runLogPreset(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.Session.LogPreset(args[0])
	if err != nil {
		return err
	}

	printBattle(entry)
	return nil
}

func runLogExercise(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.Session.LogExercise(args[0], "", exerciseCategory, exerciseMin)
	if err != nil {
		return err
	}

	fmt.Printf("%s: +%d HP, +%d exp  (id %s)\n",
		entry.Name, entry.Outcome.HealGranted, entry.Outcome.ExpGranted, entry.ID)
	return nil
}

func runLogWater(cmd *cobra.Command, args []string) error {
	ml, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.Session.LogWater(ml)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %.0f ml of water  (id %s)\n", entry.AmountML, entry.ID)
	return nil
}

// printBattle renders a food battle outcome on one line.
func printBattle(e *domain.LogEntry) {
	o := e.Outcome
	switch {
	case o.Resisted:
		fmt.Printf("%s: resisted! %d damage, hit back for %d  (id %s)\n",
			e.Name, o.Damage, o.DamageTaken, e.ID)
	case o.Dodged:
		fmt.Printf("%s: %d damage (x%.1f), counter dodged  (id %s)\n",
			e.Name, o.Damage, o.Multiplier, e.ID)
	default:
		fmt.Printf("%s: %d damage (x%.1f), +%d exp  (id %s)\n",
			e.Name, o.Damage, o.Multiplier, o.ExpGranted, e.ID)
	}
}
