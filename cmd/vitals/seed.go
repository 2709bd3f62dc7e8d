package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vitals/internal/seed"
)

var (
	seedUser  string
	seedDays  int
	seedValue uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample records for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedUser == "" {
			return fmt.Errorf("--user is required")
		}
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		entries := seed.NewGenerator(seedValue, time.Now()).Generate(seedDays)
		n, err := seed.Load(cmd.Context(), store, seedUser, entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d records for %s\n", n, seedUser)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "", "user to seed")
	seedCmd.Flags().IntVar(&seedDays, "days", seed.DefaultDays, "number of trailing days to fill")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 1, "random seed")
}
