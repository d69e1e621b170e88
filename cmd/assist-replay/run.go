package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/banshee-data/velocity.assist/internal/assist"
	"github.com/banshee-data/velocity.assist/internal/config"
	"github.com/banshee-data/velocity.assist/internal/fsutil"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/monitoring"
	"github.com/banshee-data/velocity.assist/internal/report"
	"github.com/banshee-data/velocity.assist/internal/sim"
	"github.com/banshee-data/velocity.assist/internal/tracedb"
	"github.com/banshee-data/velocity.assist/internal/units"
)

type runOptions struct {
	scenario string
	tuning   string
	ticks    int
	traceDB  string
	html     string
	png      string
	units    string
	quiet    bool

	fs fsutil.FileSystem // chart output; OSFileSystem when nil
}

func newRunCmd() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay one scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.scenario, "scenario", "", "scenario JSON file")
	f.StringVar(&o.tuning, "tuning", "", "tuning JSON file (defaults are used for omitted fields)")
	f.IntVar(&o.ticks, "ticks", 0, "override the scenario tick budget")
	f.StringVar(&o.traceDB, "trace-db", "", "record the decision trace into this sqlite file")
	f.StringVar(&o.html, "html", "", "write an HTML speed chart to this path")
	f.StringVar(&o.png, "png", "", "write a PNG speed chart to this path")
	f.StringVar(&o.units, "units", "", "narration units: "+units.GetValidSystemsString())
	f.BoolVar(&o.quiet, "quiet", false, "suppress engine diagnostics")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

func runReplay(out io.Writer, o runOptions) error {
	if o.quiet {
		original := monitoring.Logf
		monitoring.SetLogger(nil)
		defer func() { monitoring.Logf = original }()
	}

	tuning := config.EmptyTuningConfig()
	if o.tuning != "" {
		loaded, err := config.LoadTuningConfig(o.tuning)
		if err != nil {
			return err
		}
		tuning = loaded
	}
	if o.units != "" {
		if !units.IsValidSystem(o.units) {
			return fmt.Errorf("--units must be one of %s, got %q", units.GetValidSystemsString(), o.units)
		}
		tuning.NarrationUnits = &o.units
	}
	system := tuning.GetNarrationUnits()

	scn, err := sim.LoadScenario(o.scenario)
	if err != nil {
		return err
	}

	opts := sim.ReplayOptions{MaxTicks: o.ticks}
	opts.OnAnnounce = func(a host.Announcement) {
		fmt.Fprintf(out, "[%6d] %-8s %s\n", a.Tick, a.Priority, a.Text)
	}

	var (
		db  *tracedb.DB
		run *tracedb.Run
	)
	if o.traceDB != "" {
		db, err = tracedb.OpenAndMigrate(o.traceDB)
		if err != nil {
			return fmt.Errorf("open trace db: %w", err)
		}
		defer db.Close()
		run, err = db.BeginRun(scn.Name)
		if err != nil {
			return err
		}
		opts.Recorder = run
	}

	res, err := sim.Replay(scn, assist.ConfigFromTuning(tuning), opts)
	if err != nil {
		return err
	}
	if run != nil {
		if err := run.Finish(int64(len(res.Frames)), res.Distance); err != nil {
			return err
		}
	}

	printSummary(out, scn, res, system, run)

	fsys := o.fs
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	tr := report.FromFrames(scn.Name, system, res.Frames)
	if o.html != "" {
		err := fsutil.WriteWith(fsys, o.html, func(w io.Writer) error { return report.RenderHTML(w, tr) })
		if err != nil {
			return fmt.Errorf("html report: %w", err)
		}
	}
	if o.png != "" {
		err := fsutil.WriteWith(fsys, o.png, func(w io.Writer) error { return report.RenderPNG(w, tr) })
		if err != nil {
			return fmt.Errorf("png report: %w", err)
		}
	}
	return nil
}

func printSummary(out io.Writer, scn *sim.Scenario, res *sim.Result, system string, run *tracedb.Run) {
	var actuations, slowdownTicks int
	for _, f := range res.Frames {
		if f.Decision.Actuated {
			actuations++
		}
		if f.SlowdownActive {
			slowdownTicks++
		}
	}
	byCategory := map[string]int{}
	for _, a := range res.Announcements {
		byCategory[a.Category]++
	}

	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintf(out, "scenario:      %s\n", scn.Name)
	fmt.Fprintf(out, "ticks:         %d\n", len(res.Frames))
	fmt.Fprintf(out, "distance:      %s\n", units.FormatDistance(res.Distance, system))
	fmt.Fprintf(out, "announcements: %d", len(res.Announcements))
	for _, c := range slices.Sorted(maps.Keys(byCategory)) {
		fmt.Fprintf(out, " %s=%d", c, byCategory[c])
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "actuations:    %d\n", actuations)
	fmt.Fprintf(out, "slowdown:      %d ticks\n", slowdownTicks)
	if res.ActuatorErrs > 0 {
		fmt.Fprintf(out, "actuator errs: %d\n", res.ActuatorErrs)
	}
	if run != nil {
		fmt.Fprintf(out, "trace run:     %s\n", run.ID)
	}
}
