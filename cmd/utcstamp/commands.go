package main

import (
	"encoding/hex"
	"fmt"
	"github.com/davejbax/go-utc"
	"github.com/spf13/cobra"
	"log/slog"
	"math"
	"strconv"
)

// cli holds state shared by every command
type cli struct {
	verbose     bool
	layoutName  string
	decimalMark string
	logger      *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "utcstamp",
		Short: "Convert and inspect UTC timestamps",
		Long: `utcstamp reads, writes and converts UTC timestamps held as a Julian Day Number
and the nanoseconds elapsed since midnight.

Example:
  utcstamp parse 2021-11-17T09:05:12.94603Z
  utcstamp format --jdn 2440588 --nanos 0 --layout basic
  utcstamp ecma119 --long --offset 4 2025-01-01T07:45:10.12Z`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}

			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&c.layoutName, "layout", "extended", "ISO-8601 layout: extended or basic")
	rootCmd.PersistentFlags().StringVar(&c.decimalMark, "decimal-mark", ".", "Character introducing fractions of a second")

	rootCmd.AddCommand(c.parseCmd())
	rootCmd.AddCommand(c.formatCmd())
	rootCmd.AddCommand(c.unixCmd())
	rootCmd.AddCommand(c.diffCmd())
	rootCmd.AddCommand(c.ecma119Cmd())

	return rootCmd
}

// layout resolves the --layout and --decimal-mark flags
func (c *cli) layout() (utc.Layout, error) {
	var l utc.Layout
	switch c.layoutName {
	case "extended":
		l = utc.ISO8601
	case "basic":
		l = utc.ISO8601Basic
	default:
		return utc.Layout{}, fmt.Errorf("unknown layout %q, expected extended or basic", c.layoutName)
	}

	switch len(c.decimalMark) {
	case 0:
		l.DecimalMark = 0
	case 1:
		l.DecimalMark = c.decimalMark[0]
	default:
		return utc.Layout{}, fmt.Errorf("decimal mark must be a single character, got %q", c.decimalMark)
	}

	return l, nil
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Parse ISO-8601 date-times and describe them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.layout()
			if err != nil {
				return err
			}

			for _, text := range args {
				ts, err := utc.ParseLayout(l, text)
				if err != nil {
					return fmt.Errorf("failed to parse %q: %w", text, err)
				}

				c.logger.Debug("parsed timestamp", "input", text, "jdn", ts.JDN(), "nanos", ts.NanosOfDay())

				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ts.Format(l))
				fmt.Fprintf(cmd.OutOrStdout(), "  jdn:          %d\n", ts.JDN())
				fmt.Fprintf(cmd.OutOrStdout(), "  nanos of day: %d\n", ts.NanosOfDay())
				fmt.Fprintf(cmd.OutOrStdout(), "  day of week:  %d\n", ts.DayOfWeek())
				fmt.Fprintf(cmd.OutOrStdout(), "  day of year:  %d\n", ts.DayOfYear())
				fmt.Fprintf(cmd.OutOrStdout(), "  julian date:  %.9f\n", ts.JulianDate())
			}

			return nil
		},
	}
}

func (c *cli) formatCmd() *cobra.Command {
	var (
		jdn, nanos int64
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a Julian Day Number and nanoseconds of day as ISO-8601",
		Long: `Format a Julian Day Number and nanoseconds of day as ISO-8601. Nanoseconds outside
a single day are carried into the day number.

Example:
  utcstamp format --jdn 2440423 --nanos 73060000000000
  utcstamp format --jdn 2440423 --nanos 73060000000000 --offset 3600`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.layout()
			if err != nil {
				return err
			}

			ts := utc.New(jdn, nanos)
			c.logger.Debug("normalized timestamp", "jdn", ts.JDN(), "nanos", ts.NanosOfDay())

			if cmd.Flags().Changed("offset") {
				fmt.Fprintln(cmd.OutOrStdout(), ts.FormatOffset(l, offset))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ts.Format(l))
			return nil
		},
	}

	cmd.Flags().Int64Var(&jdn, "jdn", 0, "Julian Day Number")
	cmd.Flags().Int64Var(&nanos, "nanos", 0, "Nanoseconds since midnight")
	cmd.Flags().IntVar(&offset, "offset", 0, "Write local time at this many seconds east of UTC")
	_ = cmd.MarkFlagRequired("jdn")

	return cmd
}

func (c *cli) unixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unix SECONDS",
		Short: "Convert seconds since the Unix epoch to ISO-8601",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.layout()
			if err != nil {
				return err
			}

			sec, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid Unix seconds %q: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), utc.FromUnix(sec, 0).Format(l))
			return nil
		},
	}
}

func (c *cli) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff A B",
		Short: "Print the exact duration A - B",
		Long: `Print the exact duration A - B. Timestamps more than about 292 years apart are
printed as whole days plus a remainder, e.g. 117243d+0s.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.layout()
			if err != nil {
				return err
			}

			a, err := utc.ParseLayout(l, args[0])
			if err != nil {
				return fmt.Errorf("failed to parse %q: %w", args[0], err)
			}

			b, err := utc.ParseLayout(l, args[1])
			if err != nil {
				return fmt.Errorf("failed to parse %q: %w", args[1], err)
			}

			days, rest := a.Diff(b)
			c.logger.Debug("computed difference", "a", a, "b", b, "days", days, "rest", rest)

			d := a.Sub(b)
			if d == math.MaxInt64 || d == math.MinInt64 {
				// Too far apart for a duration
				fmt.Fprintf(cmd.OutOrStdout(), "%dd+%s\n", days, rest)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func (c *cli) ecma119Cmd() *cobra.Command {
	var (
		long   bool
		offset int
	)

	cmd := &cobra.Command{
		Use:   "ecma119 TEXT",
		Short: "Encode a date-time as an ECMA-119 record in hex",
		Long: `Encode a date-time as an ECMA-119 record in hex: by default the 7-byte form of
directory records, or with --long the 17-byte form of volume descriptors. The
offset is counted in 15 minute intervals east of UTC.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.layout()
			if err != nil {
				return err
			}

			ts, err := utc.ParseLayout(l, args[0])
			if err != nil {
				return fmt.Errorf("failed to parse %q: %w", args[0], err)
			}

			encode := ts.ECMA119DateTime
			if long {
				encode = ts.ECMA119LongDateTime
			}

			record, err := encode(offset)
			if err != nil {
				return err
			}

			c.logger.Debug("encoded record", "timestamp", ts, "offset", offset, "size", len(record))

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(record))
			return nil
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Write the 17-byte digit form")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset from UTC in 15 minute intervals")

	return cmd
}
