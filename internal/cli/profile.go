package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/daemon"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

func init() {
	profileInitCmd.Flags().Float64Var(&profWeight, "weight", 70, "Body weight in kg")
	profileInitCmd.Flags().Float64Var(&profHeight, "height", 170, "Height in cm")
	profileInitCmd.Flags().Float64Var(&profAge, "age", 30, "Age in years")
	profileInitCmd.Flags().StringVar(&profGender, "gender", "male", "Gender (male|female)")
	profileInitCmd.Flags().Float64Var(&profActivity, "activity", 1.4, "Activity factor, 1.2 (sedentary) to 1.9 (athlete)")
	profileInitCmd.Flags().StringVar(&profGoal, "goal", "maintain", "Goal (lose|maintain|gain)")

	profileCmd.AddCommand(profileInitCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(onboardCmd)
}

var (
	profWeight   float64
	profHeight   float64
	profAge      float64
	profGender   string
	profActivity float64
	profGoal     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the body profile behind your daily target",
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write body metrics to the config file",
	RunE:  runProfileInit,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured profile and daily target",
	RunE:  runProfileShow,
}

var onboardCmd = &cobra.Command{
	Use:   "onboard RACE",
	Short: "Create your hero (human, orc, elf or undead)",
	Args:  cobra.ExactArgs(1),
	RunE:  runOnboard,
}

func runProfileInit(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}

	cfg.Profile.WeightKg = profWeight
	cfg.Profile.HeightCm = profHeight
	cfg.Profile.Age = profAge
	cfg.Profile.Gender = strings.ToUpper(profGender)
	cfg.Profile.Activity = profActivity
	cfg.Profile.Goal = strings.ToUpper(profGoal)

	if err := daemon.SaveConfig(cfg); err != nil {
		return err
	}

	p := cfg.Profile.DomainProfile()
	fmt.Printf("Profile saved. Daily target: %d kcal (BMI %.1f)\n",
		formula.BMR(p.WeightKg, p.HeightCm, p.Age, p.Gender, p.Activity, p.Goal),
		formula.BMI(p.WeightKg, p.HeightCm))
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	p := cfg.Profile.DomainProfile()

	fmt.Printf("Weight:    %.1f kg\n", p.WeightKg)
	fmt.Printf("Height:    %.1f cm\n", p.HeightCm)
	fmt.Printf("Age:       %.0f\n", p.Age)
	fmt.Printf("Gender:    %s\n", strings.ToLower(string(p.Gender)))
	fmt.Printf("Activity:  %.2f\n", p.Activity)
	fmt.Printf("Goal:      %s\n", strings.ToLower(string(p.Goal)))
	fmt.Printf("Target:    %d kcal/day\n", formula.BMR(p.WeightKg, p.HeightCm, p.Age, p.Gender, p.Activity, p.Goal))
	return nil
}

func runOnboard(cmd *cobra.Command, args []string) error {
	race := domain.Race(strings.ToUpper(args[0]))

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	hero, err := d.Session.Onboard(race)
	if err != nil {
		return err
	}

	fmt.Printf("Hero created: level %d %s. Your quest begins today.\n",
		hero.Level, strings.ToLower(string(hero.Race)))
	return nil
}
