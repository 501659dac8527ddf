// Package main implements the tzshift CLI for converting instants
// between UTC and an arbitrary time zone's wall clock.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"

	"github.com/tzshift/tzshift/pkg/format"
	"github.com/tzshift/tzshift/pkg/tzshift"
)

var (
	zone      = flag.String("zone", "", "target zone: IANA identifier or fixed offset (or set TZSHIFT_ZONE)")
	patternIn = flag.String("pattern", "yyyy-MM-dd HH:mm:ssXXX", "output pattern (or set TZSHIFT_PATTERN)")
	localeIn  = flag.String("locale", "", "BCP-47 locale for zone names (or set TZSHIFT_LOCALE)")
	noColor   = flag.Bool("no-color", false, "disable colored output")
	verbose   = flag.Bool("verbose", false, "enable verbose logging")
	version   = flag.Bool("version", false, "show version")
)

type envConfig struct {
	Zone    string `envconfig:"ZONE"`
	Pattern string `envconfig:"PATTERN"`
	Locale  string `envconfig:"LOCALE"`
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("tzshift CLI v1.0.0")
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <iso-time|now>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	var env envConfig
	if err := envconfig.Process("tzshift", &env); err != nil {
		logger.Warn("reading environment", "error", err)
	}
	if *zone == "" {
		*zone = env.Zone
	}
	if env.Pattern != "" && !flagWasSet("pattern") {
		*patternIn = env.Pattern
	}
	if *localeIn == "" {
		*localeIn = env.Locale
	}
	if *zone == "" {
		fmt.Fprintln(os.Stderr, "no target zone: pass -zone or set TZSHIFT_ZONE")
		os.Exit(1)
	}
	if *noColor {
		color.NoColor = true
	}

	opts := []tzshift.Option{
		tzshift.WithZone(*zone),
		tzshift.WithLogger(logger),
	}
	if *localeIn != "" {
		tag, err := language.Parse(*localeIn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid locale %q: %v\n", *localeIn, err)
			os.Exit(1)
		}
		opts = append(opts, tzshift.WithLocale(tag))
	}
	conv := tzshift.New(opts...)

	if err := run(conv, args[0], *patternIn); err != nil {
		var tzErr *tzshift.InvalidTimeZoneError
		var dateErr *tzshift.InvalidDateStringError
		switch {
		case errors.As(err, &tzErr):
			fmt.Fprintf(os.Stderr, "bad zone: %v\n", err)
		case errors.As(err, &dateErr):
			fmt.Fprintf(os.Stderr, "bad time: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(conv *tzshift.Converter, arg, pat string) error {
	var instant time.Time
	if arg == "now" {
		instant = time.Now().UTC().Truncate(time.Second)
	} else {
		// An offset suffix pins the instant; naive text is read as
		// the target zone's wall clock.
		t, err := conv.ParseZoned(arg)
		if err != nil {
			return err
		}
		instant = t
	}

	label := color.New(color.FgCyan)
	value := color.New(color.FgHiWhite)

	fmt.Printf("%s  %s\n", label.Sprint("utc:  "), value.Sprint(instant.UTC().Format("2006-01-02T15:04:05Z07:00")))

	zoned, err := conv.UTCToZonedTime(instant, conv.Zone())
	if err != nil {
		return err
	}
	rendered, err := format.Using(conv, zoned, pat)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s %s\n", label.Sprint("zoned:"), value.Sprint(rendered), color.New(color.FgHiBlack).Sprint(conv.Zone()))
	return nil
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
