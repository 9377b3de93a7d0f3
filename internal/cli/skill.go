package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/daemon"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

func init() {
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillLearnCmd)
	skillCmd.AddCommand(skillArmCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(rebirthCmd)
}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse and train your race's skill tree",
}

var skillListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the skill tree with learned levels",
	RunE:    runSkillList,
}

var skillLearnCmd = &cobra.Command{
	Use:   "learn NODE_ID",
	Short: "Spend skill points to learn or upgrade a node",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillLearn,
}

var skillArmCmd = &cobra.Command{
	Use:   "arm [NODE_ID]",
	Short: "Arm an active skill for your next meal (no argument disarms)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSkillArm,
}

var rebirthCmd = &cobra.Command{
	Use:   "rebirth RACE",
	Short: "Consume a rebirth potion and start over as a new race",
	Args:  cobra.ExactArgs(1),
	RunE:  runRebirth,
}

func runSkillList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	nodes, levels, err := d.Session.SkillTree()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKILL\tLEVEL\tCOST\tREQUIRES")
	for _, n := range nodes {
		req := "-"
		if n.Parent != "" {
			req = n.Parent
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%s\n",
			n.ID, n.Name, levels[n.ID], n.MaxLevel, n.Cost, req)
	}
	return w.Flush()
}

func runSkillLearn(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Session.UpgradeSkill(args[0]); err != nil {
		return err
	}

	fmt.Printf("Learned %s\n", args[0])
	return nil
}

func runSkillArm(cmd *cobra.Command, args []string) error {
	nodeID := ""
	if len(args) == 1 {
		nodeID = args[0]
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Session.ArmSkill(nodeID); err != nil {
		return err
	}

	if nodeID == "" {
		fmt.Println("Active skill disarmed.")
	} else {
		fmt.Printf("%s armed for your next meal.\n", nodeID)
	}
	return nil
}

func runRebirth(cmd *cobra.Command, args []string) error {
	race := domain.Race(strings.ToUpper(args[0]))

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Session.Rebirth(race); err != nil {
		return err
	}

	fmt.Printf("Reborn as %s. Skill points refunded, level kept.\n",
		strings.ToLower(string(race)))
	return nil
}
