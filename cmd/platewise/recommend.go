// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/platewise/internal/models"
	"github.com/tomtom215/platewise/internal/recommend"
)

// Query modes of the recommend command.
const (
	modePersonalized = "personalized"
	modeSimilar      = "similar"
	modeCategory     = "category"
	modeTimeSlot     = "time-slot"
	modePopular      = "popular"
	modeMixed        = "mixed"
	modeGuest        = "guest"
)

type recommendOptions struct {
	mode     string
	user     string
	item     string
	category string
	slot     string
	limit    int
	explain  bool
	asJSON   bool
}

func newRecommendCmd() *cobra.Command {
	var opts recommendOptions

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations straight from the store",
		Example: `  platewise recommend --mode personalized --user ckx1... --explain
  platewise recommend --mode similar --item ckx2...
  platewise recommend --mode time-slot --slot evening --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.check(); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
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

			engine, err := newEngine(cfg, store)
			if err != nil {
				return err
			}
			if opts.limit <= 0 {
				opts.limit = cfg.Recommend.DefaultLimit
			}
			return runRecommend(ctx, cmd.OutOrStdout(), engine, store, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", modePopular, "personalized, similar, category, time-slot, popular, mixed or guest")
	f.StringVar(&opts.user, "user", "", "customer ID (personalized, mixed)")
	f.StringVar(&opts.item, "item", "", "reference menu item ID (similar)")
	f.StringVar(&opts.category, "category", "", "veg, non-veg, dessert or beverage (category)")
	f.StringVar(&opts.slot, "slot", "", "morning, afternoon, evening or night; empty means now (time-slot)")
	f.IntVar(&opts.limit, "limit", 0, "number of dishes (default recommend.default_limit)")
	f.BoolVar(&opts.explain, "explain", false, "print the score breakdown (personalized, similar)")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (o *recommendOptions) check() error {
	switch o.mode {
	case modePersonalized, modeMixed:
		if o.user == "" {
			return fmt.Errorf("--user is required for mode %s", o.mode)
		}
	case modeSimilar:
		if o.item == "" {
			return errors.New("--item is required for mode similar")
		}
	case modeCategory:
		if !models.Category(o.category).Valid() {
			return fmt.Errorf("invalid --category %q", o.category)
		}
	case modeTimeSlot:
		if o.slot != "" {
			if _, err := recommend.ParseTimeSlot(o.slot); err != nil {
				return err
			}
		}
	case modePopular, modeGuest:
	default:
		return fmt.Errorf("unknown --mode %q", o.mode)
	}
	return nil
}

// runRecommend answers one query and writes it to out.
func runRecommend(ctx context.Context, out io.Writer, engine *recommend.Engine, catalog recommend.MenuCatalogView, opts *recommendOptions) error {
	var (
		sections []models.Section
		profile  *recommend.Profile
	)

	switch opts.mode {
	case modePersonalized:
		res := engine.Personalized(ctx, opts.user, opts.limit)
		if res.Cause != nil {
			fmt.Fprintf(out, "degraded (%s): %v\n", res.Outcome, res.Cause)
		}
		sections = []models.Section{{Label: string(res.Outcome), Items: res.Items, Degraded: res.Degraded()}}
		if opts.explain && res.Outcome == recommend.OutcomePersonalized {
			p, err := engine.Profile(ctx, opts.user)
			if err != nil {
				return err
			}
			profile = &p
		}

	case modeSimilar:
		items, err := engine.Similar(ctx, opts.item, opts.limit)
		if err != nil {
			return err
		}
		sections = []models.Section{{Label: modeSimilar, Items: items}}
		if opts.explain {
			ref, err := catalog.ItemByID(ctx, opts.item)
			if err == nil {
				p := recommend.SimilarProfile(ref, engine.Config().Similar)
				profile = &p
			} else if !errors.Is(err, models.ErrNotFound) {
				return err
			}
		}

	case modeCategory, modeTimeSlot, modePopular:
		var (
			items []models.MenuItem
			err   error
			label = opts.mode
		)
		switch opts.mode {
		case modeCategory:
			items, err = engine.ByCategory(ctx, models.Category(opts.category), opts.limit)
		case modeTimeSlot:
			slot := recommend.TimeSlot(opts.slot)
			if slot == "" {
				slot = engine.CurrentSlot()
			}
			label = string(slot)
			items, err = engine.ByTimeSlot(ctx, slot, opts.limit)
		default:
			items, err = engine.Popular(ctx, opts.limit)
		}
		if err != nil {
			return err
		}
		sections = []models.Section{{Label: label, Items: items}}

	case modeMixed:
		sections = engine.Mixed(ctx, opts.user, opts.limit)

	case modeGuest:
		sections = engine.Guest(ctx, opts.limit)
	}

	if opts.asJSON {
		data, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return writeSections(out, engine.Scorer(), profile, sections)
}

func writeSections(out io.Writer, scorer *recommend.Scorer, profile *recommend.Profile, sections []models.Section) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range sections {
		header := s.Label
		if s.Degraded {
			header += " (degraded)"
		}
		fmt.Fprintf(tw, "== %s ==\n", header)

		if len(s.Items) == 0 {
			fmt.Fprintln(tw, "(no dishes)")
			continue
		}
		if profile != nil {
			fmt.Fprintln(tw, "#\tID\tNAME\tCATEGORY\tSUB\tPRICE\tRATING\tSCORE\tCAT\tSUBC\tPRC\tSPC\tRAT\tING\tALG")
		} else {
			fmt.Fprintln(tw, "#\tID\tNAME\tCATEGORY\tSUB\tPRICE\tRATING")
		}
		for i := range s.Items {
			item := &s.Items[i]
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\t%.1f (%d)",
				i+1, item.ID, item.Name, item.Category, item.SubCategory, item.Price,
				item.Rating.Average, item.Rating.Count)
			if profile != nil {
				b := scorer.Explain(profile, item)
				fmt.Fprintf(tw, "\t%.3f\t%.0f\t%.0f\t%.2f\t%.0f\t%.2f\t%.2f\t%.0f",
					b.Total, b.Category, b.SubCategory, b.Price, b.Spice, b.Rating, b.Ingredient, b.Allergen)
			}
			fmt.Fprintln(tw)
		}
	}
	return tw.Flush()
}
