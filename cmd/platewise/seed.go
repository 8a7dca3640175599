// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/seed"
)

type seedOptions struct {
	menuItems int
	customers int
	orders    int
	days      int
	random    int64
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a synthetic menu and order history into the store",
		Long: `seed generates a menu covering every category and time-slot subcategory,
a set of customers with stable habits, and their order history, then writes
it to the configured store. Flags override the seed section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("menu-items") {
				cfg.Seed.MenuItems = opts.menuItems
			}
			if flags.Changed("customers") {
				cfg.Seed.Customers = opts.customers
			}
			if flags.Changed("orders-per-customer") {
				cfg.Seed.OrdersPerCustomer = opts.orders
			}
			if flags.Changed("days") {
				cfg.Seed.Days = opts.days
			}
			if flags.Changed("random-seed") {
				cfg.Seed.RandomSeed = opts.random
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, _, err := openStore(ctx, &cfg.Database)
			if err != nil {
				return err
			}
			defer closeStore(store)

			ds := seed.NewGenerator(cfg.Seed, time.Now()).Generate()
			if err := seed.Load(ctx, store, ds); err != nil {
				return err
			}
			logging.Info().
				Int("menu_items", len(ds.Menu)).
				Int("customers", len(ds.Customers)).
				Int("orders", len(ds.Orders)).
				Msg("Seed data loaded")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "loaded %d menu items and %d orders for %d customers\n",
				len(ds.Menu), len(ds.Orders), len(ds.Customers))
			for i, id := range ds.Customers {
				if i == 5 {
					fmt.Fprintf(out, "  ... and %d more\n", len(ds.Customers)-i)
					break
				}
				fmt.Fprintf(out, "  customer %s\n", id)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.menuItems, "menu-items", 0, "number of menu items")
	f.IntVar(&opts.customers, "customers", 0, "number of customers")
	f.IntVar(&opts.orders, "orders-per-customer", 0, "orders generated per customer")
	f.IntVar(&opts.days, "days", 0, "days of history to spread orders over")
	f.Int64Var(&opts.random, "random-seed", 0, "seed of the menu and order generator")
	return cmd
}
