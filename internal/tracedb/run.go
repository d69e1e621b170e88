package tracedb

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/velocity.assist/internal/assist"
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

// Run records one replay into the trace database. It satisfies
// assist.Recorder.
type Run struct {
	db       *DB
	ID       string
	Scenario string
}

var _ assist.Recorder = (*Run)(nil)

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID        string
	Scenario  string
	StartedAt string
	Ticks     int64
	Distance  float64
	Finished  bool
}

// DecisionRow is one recorded tick.
type DecisionRow struct {
	Tick           timeutil.Tick
	Valid          bool
	X, Y           float64
	HeadingDeg     float64
	Speed          float64
	Effective      float64
	Ceiling        float64
	Actuated       bool
	Suspended      bool
	SlowdownActive bool
	CurveCap       float64 // +Inf when no cap was set
	FollowingCap   float64 // +Inf when no cap was set
	Band           string
	Announcements  int
}

// AnnouncementRow is one recorded narration.
type AnnouncementRow struct {
	Tick     timeutil.Tick
	Category string
	Priority string
	Text     string
}

// BeginRun inserts a run row with a fresh id.
func (db *DB) BeginRun(scenario string) (*Run, error) {
	id := uuid.NewString()
	if _, err := db.Exec(`INSERT INTO runs (run_id, scenario) VALUES (?, ?)`, id, scenario); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	logf("run %s started for scenario %q", id, scenario)
	return &Run{db: db, ID: id, Scenario: scenario}, nil
}

// RecordFrame stores one tick of the run.
func (r *Run) RecordFrame(f assist.Frame) error {
	return r.db.RecordDecision(r.ID, f)
}

// RecordAnnouncement stores one narration of the run.
func (r *Run) RecordAnnouncement(a host.Announcement) error {
	return r.db.RecordAnnouncement(r.ID, a)
}

// Finish stamps the run with its tick count and distance travelled.
func (r *Run) Finish(ticks int64, distance float64) error {
	_, err := r.db.Exec(`
		UPDATE runs
		SET finished_at = CURRENT_TIMESTAMP, ticks = ?, distance_m = ?
		WHERE run_id = ?`, ticks, distance, r.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", r.ID, err)
	}
	return nil
}

// RecordDecision stores one frame for runID.
func (db *DB) RecordDecision(runID string, f assist.Frame) error {
	_, err := db.Exec(`
		INSERT INTO decisions (
			run_id, tick, valid, x, y, heading_deg, speed,
			effective, ceiling, actuated, suspended, slowdown_active,
			curve_cap, following_cap, band, announcements
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, int64(f.Tick), f.Valid,
		f.Telemetry.Position.X, f.Telemetry.Position.Y, f.Telemetry.HeadingDeg, f.Telemetry.Speed,
		f.Decision.Effective, f.Decision.Ceiling, f.Decision.Actuated, f.Suspended, f.SlowdownActive,
		nullableCap(f.CurveCap), nullableCap(f.FollowingCap), f.FollowingBand.String(), f.Announcements,
	)
	if err != nil {
		return fmt.Errorf("failed to insert decision at tick %d: %w", f.Tick, err)
	}
	return nil
}

// RecordAnnouncement stores one narration for runID.
func (db *DB) RecordAnnouncement(runID string, a host.Announcement) error {
	_, err := db.Exec(`
		INSERT INTO announcements (run_id, tick, category, priority, text)
		VALUES (?, ?, ?, ?, ?)`,
		runID, int64(a.Tick), a.Category, a.Priority.String(), a.Text)
	if err != nil {
		return fmt.Errorf("failed to insert announcement at tick %d: %w", a.Tick, err)
	}
	return nil
}

// Runs lists every run, most recent first.
func (db *DB) Runs() ([]RunSummary, error) {
	rows, err := db.Query(`
		SELECT run_id, scenario, started_at, ticks, distance_m, finished_at IS NOT NULL
		FROM runs
		ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.Scenario, &s.StartedAt, &s.Ticks, &s.Distance, &s.Finished); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Decisions returns the frames recorded for runID in tick order.
func (db *DB) Decisions(runID string) ([]DecisionRow, error) {
	rows, err := db.Query(`
		SELECT tick, valid, x, y, heading_deg, speed,
			effective, ceiling, actuated, suspended, slowdown_active,
			curve_cap, following_cap, band, announcements
		FROM decisions
		WHERE run_id = ?
		ORDER BY tick`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DecisionRow
	for rows.Next() {
		var (
			d         DecisionRow
			tick      int64
			curveCap  sql.NullFloat64
			followCap sql.NullFloat64
		)
		if err := rows.Scan(&tick, &d.Valid, &d.X, &d.Y, &d.HeadingDeg, &d.Speed,
			&d.Effective, &d.Ceiling, &d.Actuated, &d.Suspended, &d.SlowdownActive,
			&curveCap, &followCap, &d.Band, &d.Announcements); err != nil {
			return nil, err
		}
		d.Tick = timeutil.Tick(tick)
		d.CurveCap = capFromNull(curveCap)
		d.FollowingCap = capFromNull(followCap)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Announcements returns the narrations recorded for runID in tick order.
func (db *DB) Announcements(runID string) ([]AnnouncementRow, error) {
	rows, err := db.Query(`
		SELECT tick, category, priority, text
		FROM announcements
		WHERE run_id = ?
		ORDER BY tick, announcement_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnnouncementRow
	for rows.Next() {
		var (
			a    AnnouncementRow
			tick int64
		)
		if err := rows.Scan(&tick, &a.Category, &a.Priority, &a.Text); err != nil {
			return nil, err
		}
		a.Tick = timeutil.Tick(tick)
		out = append(out, a)
	}
	return out, rows.Err()
}

// nullableCap stores unbounded caps as NULL; sqlite has no infinity literal.
func nullableCap(v float64) sql.NullFloat64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func capFromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.Inf(1)
	}
	return v.Float64
}
