package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/daemon"
)

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(rmCmd)
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Settle the previous day if the date has rolled over",
	RunE:  runDay,
}

var rmCmd = &cobra.Command{
	Use:   "rm LOG_ID",
	Short: "Delete a log entry and reverse its battle effects",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runDay(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	report, err := d.Session.CheckAndAdvanceDay()
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Println("Nothing to settle — the day has not rolled over yet.")
		return nil
	}

	if !report.HadLogs {
		if report.FreezeUsed {
			fmt.Printf("%s: no logs, but a streak freeze saved your %d-day streak.\n",
				report.Date, report.StreakAfter)
		} else {
			fmt.Printf("%s: no logs. Streak reset to %d.\n", report.Date, report.StreakAfter)
		}
		return nil
	}

	switch {
	case report.Victory:
		fmt.Printf("%s: victory over %s! +%d exp, +%d gold, +%d HP. Streak: %d days.\n",
			report.Date, report.Monster.Name,
			report.ExpGranted, report.GoldGranted, report.Healed, report.StreakAfter)
	case report.Collapsed:
		fmt.Printf("%s: you collapsed from hunger (%.0f%% of target). Streak reset.\n",
			report.Date, report.Ratio*100)
	default:
		fmt.Printf("%s: the day is lost (%.0f%% of target). +%d exp, +%d gold.\n",
			report.Date, report.Ratio*100, report.ExpGranted, report.GoldGranted)
	}
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Session.DeleteLog(args[0]); err != nil {
		return err
	}

	fmt.Printf("Removed %s and reversed its effects.\n", args[0])
	return nil
}
