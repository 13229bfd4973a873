package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rsudist/app"
	"github.com/kilianp07/rsudist/config"
	"github.com/kilianp07/rsudist/core/calculator"
	"github.com/kilianp07/rsudist/core/input"
	"github.com/kilianp07/rsudist/core/model"
	"github.com/kilianp07/rsudist/core/vesting"
	"github.com/kilianp07/rsudist/pkg/export"
	"github.com/kilianp07/rsudist/pkg/grantfile"
)

var (
	cfgPath    string
	timezone   string
	allocation string
	format     string
	outPath    string
	xlsxPath   string
	sheetName  string
	rangeRef   string
	grantsPath string
)

var rootCmd = &cobra.Command{
	Use:   "rsudist [shares date | date shares]",
	Short: "Compute RSU vesting distribution schedules",
	Long: `rsudist splits equity grants into 16 quarterly vesting events and merges
several grants into one schedule, summing shares vesting on the same date.

  rsudist 16 1/1/2020
  rsudist 2020-01-01 16 --tz America/New_York --format csv
  rsudist --xlsx grants.xlsx --range A1:B3 --format xlsx --out schedule.xlsx
  rsudist --grants grants.yaml`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "IANA timezone defining midnight (overrides vesting.timezone)")
	rootCmd.PersistentFlags().StringVar(&allocation, "allocation", "", "share allocation policy: front_loaded or accrual")
	rootCmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json, csv or xlsx")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to file instead of stdout")
	rootCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "read grants from a workbook range")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet holding the grants (default first sheet)")
	rootCmd.Flags().StringVar(&rangeRef, "range", "", "cell range holding [shares, date] pairs, e.g. A1:B3 (default used area)")
	rootCmd.Flags().StringVar(&grantsPath, "grants", "", "read grants from a yaml or json grants file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if timezone != "" {
		cfg.Vesting.Timezone = timezone
	}
	if allocation != "" {
		cfg.Vesting.Allocation = allocation
	}
	if err := cfg.Vesting.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && xlsxPath == "" && grantsPath == "" {
		return cmd.Help()
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}

	req := calculator.Request{Source: "cli"}
	if (xlsxPath != "" || grantsPath != "") && len(args) > 0 {
		return fmt.Errorf("positional grant arguments cannot be combined with --xlsx or --grants")
	}
	switch {
	case xlsxPath != "" && grantsPath != "":
		return fmt.Errorf("--xlsx and --grants are mutually exclusive")
	case grantsPath != "":
		file, err := grantfile.Load(grantsPath)
		if err != nil {
			return err
		}
		req.Input = file.Range()
	case xlsxPath != "":
		loc, err := vesting.LoadLocation(cfg.Vesting.Timezone)
		if err != nil {
			return err
		}
		rows, err := export.ReadRangeFile(xlsxPath, sheetName, rangeRef, loc)
		if err != nil {
			return err
		}
		req.Input = input.Range{Rows: rows}
	default:
		req.Args = argCells(args)
	}

	res, err := svc.Calculator.Calculate(req)
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.Write(cmd.OutOrStdout(), f, res.Schedule, cfg.Export)
	}
	return writeFile(outPath, f, res.Schedule, cfg.Export)
}

func writeFile(path string, f export.Format, s model.Schedule, opts export.Options) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return export.Write(file, f, s, opts)
}

// argCells types command-line words the way a spreadsheet types literals:
// integers and decimals are numbers, anything else is text.
func argCells(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		a = strings.TrimSpace(a)
		if n, err := strconv.Atoi(a); err == nil {
			out[i] = input.Int(n)
			continue
		}
		if f, err := strconv.ParseFloat(a, 64); err == nil {
			out[i] = input.Number(f)
			continue
		}
		if t, err := time.Parse(time.RFC3339, a); err == nil {
			out[i] = input.Date(t)
			continue
		}
		out[i] = input.Text(a)
	}
	return out
}
