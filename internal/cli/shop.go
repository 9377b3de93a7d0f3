package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutriquest-app/nutriquest/internal/daemon"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
)

func init() {
	goldCmd.Flags().IntVar(&goldLimit, "limit", 20, "Number of ledger rows to show")

	shopCmd.AddCommand(shopBuyCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(goldCmd)
	rootCmd.AddCommand(achievementsCmd)
}

var goldLimit int

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List consumables for sale",
	RunE:  runShop,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy ITEM_ID",
	Short: "Buy a consumable with gold",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

var goldCmd = &cobra.Command{
	Use:   "gold",
	Short: "Show the gold ledger",
	RunE:  runGold,
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and equipped gear",
	RunE:  runAchievements,
}

func runShop(cmd *cobra.Command, args []string) error {
	ids := make([]string, 0, len(catalog.ItemPrices))
	for id := range catalog.ItemPrices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tPRICE")
	for _, id := range ids {
		fmt.Fprintf(w, "%s\t%d gold\n", id, catalog.ItemPrices[id])
	}
	return w.Flush()
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Session.BuyItem(args[0]); err != nil {
		return err
	}

	fmt.Printf("Bought %s.\n", args[0])
	return nil
}

func runGold(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	hero, err := d.Session.Hero()
	if err != nil {
		return err
	}
	entries, err := d.Session.GoldHistory(goldLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Balance: %d gold\n\n", hero.Gold)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTYPE\tAMOUNT\tNOTE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%+d\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Amount, e.Description)
	}
	return w.Flush()
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	views, err := d.Session.Achievements()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACHIEVEMENT\tSTATE")
	for _, v := range views {
		state := "locked"
		switch {
		case v.Equipped:
			state = "equipped"
		case v.Unlocked:
			state = "unlocked"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", v.ID, v.Icon, v.Name, state)
	}
	return w.Flush()
}
