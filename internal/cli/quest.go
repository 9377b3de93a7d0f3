package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/daemon"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

func init() {
	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questAcceptCmd)
	questCmd.AddCommand(questClaimCmd)
	questCmd.AddCommand(questAbandonCmd)
	rootCmd.AddCommand(questCmd)
}

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Browse and manage daily quests",
}

var questListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List today's quest board and your active quests",
	RunE:    runQuestList,
}

var questAcceptCmd = &cobra.Command{
	Use:   "accept SLUG",
	Short: "Accept a quest from today's board",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestAccept,
}

var questClaimCmd = &cobra.Command{
	Use:   "claim QUEST_ID",
	Short: "Claim the gold reward of a completed quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestClaim,
}

var questAbandonCmd = &cobra.Command{
	Use:   "abandon QUEST_ID",
	Short: "Abandon an accepted quest, freeing its slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestAbandon,
}

func runQuestList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	daily, err := d.Session.DailyQuests()
	if err != nil {
		return err
	}
	active, err := d.Session.ActiveQuests()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUEST\tRARITY\tPROGRESS\tSTATUS")
	for _, q := range daily {
		printQuestRow(w, q)
	}
	for _, q := range active {
		if q.Status != domain.QuestAvailable {
			printQuestRow(w, q)
		}
	}
	return w.Flush()
}

func printQuestRow(w *tabwriter.Writer, q domain.Quest) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
		q.ID, q.Title, q.Rarity, q.Progress, q.Target, q.Status)
}

func runQuestAccept(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	q, err := d.Session.AcceptQuest(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Accepted %q  (id %s)\n", q.Title, q.ID)
	return nil
}

func runQuestClaim(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	gold, err := d.Session.ClaimQuest(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Claimed! +%d gold\n", gold)
	return nil
}

func runQuestAbandon(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Session.AbandonQuest(args[0]); err != nil {
		return err
	}

	fmt.Println("Quest abandoned.")
	return nil
}
