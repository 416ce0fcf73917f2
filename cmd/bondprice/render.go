package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/meenmo/bondmc/bond"
	"github.com/meenmo/bondmc/history"
	"github.com/meenmo/bondmc/sim"
)

// usd renders a float price as US dollars rounded to cents, e.g. "$1,023.58".
func usd(v float64) string {
	cents := decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

func printResults(w io.Writer, staticPrice float64, res sim.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "Static Bond Price: %s\n", usd(staticPrice))
	fmt.Fprintf(w, "Monte Carlo Bond Price: %s ± %s\n", usd(res.Mean), usd(res.StdDev))
	fmt.Fprintf(w, "  trials: %d  std err: %s  range: [%s, %s]\n",
		res.Trials, usd(res.StdErr), usd(res.Min), usd(res.Max))
}

func printCashflows(w io.Writer, b *bond.Bond) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tTIME (Y)\tCOUPON\tPRINCIPAL")
	for _, cf := range b.Cashflows() {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\n", cf.Period, cf.Time, usd(cf.Coupon), usd(cf.Principal))
	}
	tw.Flush()
}

func printHistory(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tBOND\tTRIALS\tSTATIC\tMC MEAN\tMC STDDEV")
	for _, r := range runs {
		terms := fmt.Sprintf("%.4g @ %.2f%% %dy x%d", r.FaceValue, r.CouponRate*100, r.Years, r.Frequency)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), terms, r.Trials,
			usd(r.StaticPrice), usd(r.MeanPrice), usd(r.StdDev))
	}
	tw.Flush()
}
