// bondprice — price a bond against a yield curve, statically and via
// Monte Carlo simulation of rate shocks.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/bondmc/bond"
	"github.com/meenmo/bondmc/config"
	"github.com/meenmo/bondmc/history"
	"github.com/meenmo/bondmc/sim"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg config.Config
	log = logrus.New()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bondprice",
	Short: "Bond pricing against a yield curve with Monte Carlo rate shocks",
	Long: `bondprice values a fixed-coupon or zero-coupon bond against a term
structure of interest rates. It reports the static (deterministic) price and
a Monte Carlo estimate of the price distribution under random curve shocks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		configureLogging(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./bondmc.yaml)")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func configureLogging(lc config.LoggingConfig) {
	log.SetOutput(os.Stderr)
	if lc.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}

// --- Price Command ---

var (
	flagFace      float64
	flagCoupon    float64
	flagYears     int
	flagFrequency int
	flagSims      int
	flagWorkers   int
	flagSeed      uint64
	flagCashflows bool
	flagHistory   bool
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Compute the static and Monte Carlo price of a bond",
	RunE:  runPrice,
}

func init() {
	priceCmd.Flags().Float64Var(&flagFace, "face", 1000, "bond face value")
	priceCmd.Flags().Float64Var(&flagCoupon, "coupon", 0.05, "annual coupon rate as a decimal (0 for zero-coupon)")
	priceCmd.Flags().IntVar(&flagYears, "years", 10, "years to maturity")
	priceCmd.Flags().IntVar(&flagFrequency, "frequency", 2, "coupon payments per year")
	priceCmd.Flags().IntVar(&flagSims, "sims", 0, "Monte Carlo simulation count (default from config)")
	priceCmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent simulation workers (default from config)")
	priceCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "deterministic random seed (0 = seed from entropy)")
	priceCmd.Flags().BoolVar(&flagCashflows, "cashflows", false, "print the bond's cash flow schedule")
	priceCmd.Flags().BoolVar(&flagHistory, "history", false, "record this run to the history store")
}

func runPrice(cmd *cobra.Command, args []string) error {
	b, err := bond.New(flagFace, flagCoupon, flagYears, flagFrequency)
	if err != nil {
		return err
	}

	base, err := cfg.BaseCurve()
	if err != nil {
		return err
	}

	trials := cfg.Simulation.Trials
	if flagSims > 0 {
		trials = flagSims
	}
	workers := cfg.Simulation.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	seed := cfg.Simulation.Seed
	if flagSeed != 0 {
		seed = flagSeed
	}

	opts := []sim.Option{
		sim.WithWorkers(workers),
		sim.WithShockStdDev(cfg.Simulation.ShockStdDev),
	}
	if seed != 0 {
		opts = append(opts, sim.WithSeed(seed))
	}

	engine, err := sim.New(b, base, trials, opts...)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"face":      b.FaceValue,
		"coupon":    b.CouponRate,
		"years":     b.Years,
		"frequency": b.Frequency,
		"trials":    trials,
		"workers":   workers,
	}).Debug("pricing bond")

	staticPrice := engine.StaticPrice()

	started := time.Now()
	result, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"run_id":  result.RunID,
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Debug("simulation complete")

	if flagCashflows {
		printCashflows(cmd.OutOrStdout(), b)
	}
	printResults(cmd.OutOrStdout(), staticPrice, result)

	if flagHistory || cfg.History.Enabled {
		if err := recordRun(cmd, b, staticPrice, result); err != nil {
			// Persistence failure should not discard the computed prices.
			log.WithError(err).Warn("failed to record run history")
		}
	}
	return nil
}

func recordRun(cmd *cobra.Command, b *bond.Bond, staticPrice float64, res sim.Result) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(cmd.Context(), history.Run{
		ID:          res.RunID,
		CreatedAt:   time.Now().UTC(),
		FaceValue:   b.FaceValue,
		CouponRate:  b.CouponRate,
		Years:       b.Years,
		Frequency:   b.Frequency,
		Trials:      res.Trials,
		StaticPrice: staticPrice,
		MeanPrice:   res.Mean,
		StdDev:      res.StdDev,
	})
}

// --- History Command ---

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent pricing runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(cmd.Context(), flagHistoryLimit)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), runs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "maximum number of runs to list")
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bondprice %s (%s)\n", version, commit)
	},
}
