package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"

	"github.com/mrsinham/dateomatic/cmd/dateomatic/wizard"
	"github.com/mrsinham/dateomatic/internal/candidates"
	"github.com/mrsinham/dateomatic/internal/config"
	"github.com/mrsinham/dateomatic/internal/dicomdate"
	"github.com/mrsinham/dateomatic/internal/logger"
)

// version is set at build time via -ldflags
var version = "dev"

// runWizard is swapped in tests; the real form needs a terminal.
var runWizard = wizard.Run

type options struct {
	configFile  string
	saveConfig  string
	dicomPaths  []string
	dicomTag    string
	workers     int
	interactive bool
	count       bool
	verbose     bool
	showVersion bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args (program name first) and returns the exit code.
// Candidates go to stdout; diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	name := args[0]

	// -h anywhere wins, even after positional arguments.
	if slices.Contains(args[1:], "-h") {
		printHelp(stdout, name)
		return 0
	}

	var opts options
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configFile, "config", "", "Load separators, schemas and months from YAML file")
	fs.StringVar(&opts.saveConfig, "save-config", "", "Save the effective tables to YAML file")
	fs.Func("dicom", "Read the date from a DICOM file or directory (repeatable)", func(s string) error {
		opts.dicomPaths = append(opts.dicomPaths, s)
		return nil
	})
	fs.StringVar(&opts.dicomTag, "dicom-tag", "PatientBirthDate", "DICOM date element to read")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of parallel DICOM readers")
	fs.BoolVar(&opts.interactive, "interactive", false, "Prompt for the date")
	fs.BoolVar(&opts.interactive, "i", false, "Prompt for the date (shortcut)")
	fs.BoolVar(&opts.count, "count", false, "Print the number of candidates instead of the candidates")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log debug information to stderr")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version")

	flagArgs, positional := splitFlags(fs, args[1:])
	if err := fs.Parse(flagArgs); err != nil {
		// Only the literal -h succeeds; -help and --help are wrong usage.
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout, name)
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printUsage(stdout, name)
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "dateomatic %s\n", version)
		return 0
	}

	log := logger.Nop()
	if opts.verbose {
		l, err := logger.New(logger.Config{Level: "debug", Development: true})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		log = l
	}
	defer log.Sync()

	tables := candidates.DefaultTables()
	if opts.configFile != "" {
		t, err := config.Load(opts.configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
		tables = t
		log.Debugw("loaded tables", "path", opts.configFile,
			"separators", len(tables.Separators), "schemas", len(tables.Schemas))
	}
	for _, s := range tables.Schemas {
		if unknown := s.Unknown(); len(unknown) > 0 {
			log.Warnw("schema has unknown identifiers and will produce no candidates",
				"schema", string(s), "unknown", string(unknown))
		}
	}

	if opts.saveConfig != "" {
		if err := config.Save(tables, opts.saveConfig); err != nil {
			fmt.Fprintf(stderr, "Warning: could not save config: %v\n", err)
		} else {
			log.Debugw("saved tables", "path", opts.saveConfig)
		}
	}

	dates, code := collectDates(ctx, name, positional, opts, stdout, stderr, log)
	if code >= 0 {
		return code
	}

	w := bufio.NewWriter(stdout)
	for _, d := range dates {
		if opts.count {
			fmt.Fprintln(w, candidates.Count(d, tables))
			continue
		}
		seq, err := candidates.Generate(d, tables)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		n := 0
		for s := range seq {
			if _, err := w.WriteString(s + "\n"); err != nil {
				break
			}
			n++
		}
		log.Debugw("generated candidates", "date", d.String(), "count", n)
	}
	if err := w.Flush(); err != nil {
		log.Debugw("write candidates", "error", err)
		return 1
	}
	return 0
}

// collectDates resolves where the dates come from. A non-negative code means run
// should exit with it.
func collectDates(ctx context.Context, name string, positional []string, opts options,
	stdout, stderr io.Writer, log *logger.Logger) ([]candidates.Date, int) {
	switch {
	case opts.interactive:
		if len(positional) != 0 || len(opts.dicomPaths) != 0 {
			fmt.Fprintln(stderr, "Error: --interactive takes no date arguments")
			printUsage(stdout, name)
			return nil, 1
		}
		d, err := runWizard(stderr)
		if err != nil {
			if !errors.Is(err, wizard.ErrCancelled) {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			return nil, 1
		}
		return []candidates.Date{d}, -1

	case len(opts.dicomPaths) > 0:
		if len(positional) != 0 {
			fmt.Fprintln(stderr, "Error: --dicom takes no date arguments")
			printUsage(stdout, name)
			return nil, 1
		}
		t, err := dicomdate.ParseTag(opts.dicomTag)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return nil, 1
		}
		read, err := dicomdate.ReadAll(ctx, opts.dicomPaths, t, opts.workers, log.Named("dicom"))
		if err != nil {
			fmt.Fprintf(stderr, "Error reading DICOM dates: %v\n", err)
			return nil, 1
		}
		dates := uniqueDates(read)
		log.Named("dicom").Debugw("read DICOM dates", "files", len(read), "dates", len(dates), "tag", opts.dicomTag)
		return dates, -1

	default:
		if len(positional) != 3 {
			printHelp(stdout, name)
			return nil, 1
		}
		d, err := candidates.ParseDate(positional[0], positional[1], positional[2])
		if err != nil {
			log.Debugw("invalid date", "error", err)
			return nil, 1
		}
		if err := d.Validate(); err != nil {
			log.Debugw("invalid date", "error", err)
			return nil, 1
		}
		return []candidates.Date{d}, -1
	}
}

// uniqueDates drops repeated dates, keeping first occurrences. Files of one series
// usually share a birth date.
func uniqueDates(dates []candidates.Date) []candidates.Date {
	seen := make(map[candidates.Date]bool, len(dates))
	var out []candidates.Date
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// splitFlags separates the leading registered flags (with their values) from the
// positionals. The first argument that is not a registered flag, including "--",
// "-5" or "-1.5", starts the positionals, so such values reach the date parser
// instead of the flag set. A non-boolean flag given without "=" consumes the next
// argument as its value even when it starts with a dash.
func splitFlags(fs *flag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) < 2 || a[0] != '-' || a == "--" {
			return args[:i], args[i:]
		}
		name, _, hasValue := strings.Cut(strings.TrimPrefix(a[1:], "-"), "=")
		f := fs.Lookup(name)
		if f == nil && name != "help" {
			return args[:i], args[i:]
		}
		if f != nil && !hasValue && !isBoolFlag(f) && i+1 < len(args) {
			i++
		}
	}
	return args, nil
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func printUsage(w io.Writer, name string) {
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintf(w, "\t%s [-h] day month year\n", name)
	fmt.Fprintf(w, "\t%s [options] day month year\n", name)
	fmt.Fprintf(w, "\t%s [options] --dicom PATH [--dicom PATH ...]\n", name)
	fmt.Fprintf(w, "\t%s [options] -i\n", name)
}

func printHelp(w io.Writer, name string) {
	printUsage(w, name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DESCRIPTION:")
	fmt.Fprintln(w, "\t-h\tshow this help and exit")
	fmt.Fprintln(w, "\tday\tday of the date (ex: 11)")
	fmt.Fprintln(w, "\tmonth\tmonth of the date (ex: 3)")
	fmt.Fprintln(w, "\tyear\tyear of the date (ex: 1998)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprintln(w, "\t--config FILE       load separators, schemas and months from YAML")
	fmt.Fprintln(w, "\t--save-config FILE  save the effective tables to YAML")
	fmt.Fprintln(w, "\t--dicom PATH        read the date from a DICOM file or directory (repeatable)")
	fmt.Fprintf(w, "\t--dicom-tag NAME    DICOM date element: %s (default: PatientBirthDate)\n",
		strings.Join(dicomdate.TagNames(), ", "))
	fmt.Fprintf(w, "\t--workers N         parallel DICOM readers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Fprintln(w, "\t-i, --interactive   prompt for the date")
	fmt.Fprintln(w, "\t--count             print the number of candidates only")
	fmt.Fprintln(w, "\t--verbose           log debug information to stderr")
	fmt.Fprintln(w, "\t--version           show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintf(w, "\t%s 11 3 1998\n", name)
	fmt.Fprintf(w, "\t%s --config tables.yaml 1 1 2000\n", name)
	fmt.Fprintf(w, "\t%s --dicom ./dicom_series --dicom-tag StudyDate\n", name)
}
