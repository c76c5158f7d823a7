package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"spendwatch/internal/cli"
	"spendwatch/internal/core"
	"spendwatch/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenFileStore(logger, cfg.RecordsFile)
	svc := services.NewRecordService(store, nil)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(ctx, svc, os.Args[2:])
	case "list":
		err = runList(ctx, svc)
	case "stats":
		err = runStats(ctx, svc)
	case "dashboard":
		err = runDashboard(ctx, svc)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: spendwatch-cli <command> [flags]

commands:
  add        add a spending/usage record
  list       print all records
  stats      frequency summary and 7-day usage chart
  dashboard  month-to-date overview`)
}

func runAdd(ctx context.Context, svc *services.RecordService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "item or project name (required)")
	amount := fs.Float64("amount", 0, "amount spent")
	category := fs.String("category", "", "category label (required)")
	frequency := fs.String("frequency", "", "usage frequency, e.g. daily, weekly, once")
	minutes := fs.Int("minutes", 0, "usage duration in minutes")
	date := fs.String("date", "", "record date YYYY-MM-DD, defaults to today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record, err := svc.CreateRecord(ctx, services.CreateInput{
		Name:      *name,
		Amount:    *amount,
		Category:  *category,
		Frequency: *frequency,
		Minutes:   *minutes,
		Date:      *date,
	})
	if err != nil {
		return err
	}
	fmt.Println("Record added:")
	printRecord(record)
	return nil
}

func runList(ctx context.Context, svc *services.RecordService) error {
	records, err := svc.ListRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No records yet; use the add command.")
		return nil
	}
	fmt.Println("All records:")
	for _, r := range records {
		printRecord(r)
	}
	return nil
}

func runStats(ctx context.Context, svc *services.RecordService) error {
	groups, err := svc.FrequencySummary(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No records yet; nothing to summarize.")
		return nil
	}

	fmt.Println("By usage frequency:")
	for _, g := range groups {
		fmt.Printf("- %s: %d records | spent %.2f | used %d min\n",
			g.Label, g.Count, g.TotalAmount, g.TotalMinutes)
	}

	days, err := svc.DailyBarChart(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Println("\nLast 7 days of usage (minutes):")
	for _, d := range days {
		fmt.Printf("%s | %-*s %4d min\n",
			d.Date, core.BarWidth, strings.Repeat("█", d.BarLength), d.Minutes)
	}
	return nil
}

func runDashboard(ctx context.Context, svc *services.RecordService) error {
	dash, err := svc.Dashboard(ctx, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Month %s .. %s\n", dash.StartOfMonth, dash.EndOfMonth)
	fmt.Printf("This month: %d min | %.2f spent | avg %.1f min/day | goal %d%%\n",
		dash.MonthMinutes, dash.MonthAmount, dash.AveragePerDay, dash.Progress)
	fmt.Printf("All time:   %d min | %.2f spent\n", dash.TotalMinutes, dash.TotalAmount)

	if len(dash.ProjectLabels) > 0 {
		fmt.Println("\nTop usage by project:")
		for i := range dash.ProjectLabels {
			fmt.Printf("- %s: %d min\n", dash.ProjectLabels[i], dash.ProjectMinutes[i])
		}
	}
	if len(dash.Recent) > 0 {
		fmt.Println("\nRecent records:")
		for _, r := range dash.Recent {
			fmt.Printf("[%d] ", r.Index)
			printRecord(r.Record)
		}
	}
	return nil
}

func printRecord(r core.Record) {
	fmt.Printf("- %s | %s | %.2f | category: %s | %s / %d min\n",
		r.CreatedAt, r.Name, r.Amount, r.Category, r.UsageFrequency, r.UsageMinutes)
}
