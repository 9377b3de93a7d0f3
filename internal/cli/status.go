package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your hero and today's stage",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	hero, err := d.Session.Hero()
	if err != nil {
		return err
	}
	derived, err := d.Session.Derived()
	if err != nil {
		return err
	}
	info, monster, env, err := d.Session.StageNow()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d %s  —  %d / %d exp, %d skill points\n",
		hero.Level, strings.ToLower(string(hero.Race)),
		hero.CurrentExp, formula.NextLevelExp(hero.Level), hero.SkillPoints)
	fmt.Printf("HP %d/%d", hero.CurrentHP, derived.MaxHP)
	if hero.Shield > 0 {
		fmt.Printf(" (+%d shield)", hero.Shield)
	}
	fmt.Println()
	fmt.Printf("STR %d  AGI %d  VIT %d  —  combat power %d\n",
		derived.Strength, derived.Agility, derived.Vitality, derived.CombatPower)
	fmt.Printf("Gold %d  —  streak %d days  —  combo x%d\n",
		hero.Gold, hero.LoginStreak, hero.ComboCount)

	fmt.Println()
	fmt.Printf("Stage: %d / %d kcal", info.Cumulative, info.Target)
	switch {
	case info.Overloaded:
		fmt.Print("  [OVERLOADED]")
	case info.Cleared:
		fmt.Print("  [CLEARED]")
	}
	fmt.Println()
	fmt.Printf("Facing %s %s (%d HP left)  —  %s (x%.2f)\n",
		monster.Icon, monster.Name, info.RemainingHP, env.Name, env.Multiplier)
	return nil
}
