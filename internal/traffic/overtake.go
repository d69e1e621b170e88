package traffic

import (
	"github.com/banshee-data/velocity.assist/internal/host"
	"github.com/banshee-data/velocity.assist/internal/timeutil"
)

// CategoryOvertake is the announcement category for completed overtakes.
const CategoryOvertake = "overtake"

// Position is an agent's longitudinal position relative to the vehicle.
type Position string

const (
	Ahead  Position = "ahead"
	Beside Position = "beside"
	Behind Position = "behind"
)

// OvertakeRecord tracks one agent the vehicle is closing on.
type OvertakeRecord struct {
	AgentID   int64
	State     Position
	Lateral   float64 // metres, positive right
	FirstSeen timeutil.Tick
	LastSeen  timeutil.Tick
}

// OvertakeTracker runs the per-agent Ahead, Beside, Behind state machine.
// Records live in a map keyed by agent ID, bounded by MaxTracked and swept
// every scan.
type OvertakeTracker struct {
	cfg      OvertakeConfig
	cooldown *timeutil.Cooldown
	records  map[int64]*OvertakeRecord
}

// NewOvertakeTracker returns an empty tracker.
func NewOvertakeTracker(cfg OvertakeConfig) *OvertakeTracker {
	return &OvertakeTracker{
		cfg:      cfg,
		cooldown: timeutil.NewCooldown(),
		records:  make(map[int64]*OvertakeRecord),
	}
}

// Classify buckets a forward offset in metres.
func (o *OvertakeTracker) Classify(forward float64) Position {
	switch {
	case forward > o.cfg.SideDistance:
		return Ahead
	case forward < -o.cfg.BehindDistance:
		return Behind
	default:
		return Beside
	}
}

// Scan advances every record against one proximity result and returns the
// overtakes completed on this scan. t must already be validated. Agents with
// their siren on, or with non-finite state, are ignored.
func (o *OvertakeTracker) Scan(t host.Telemetry, agents []host.Agent, now timeutil.Tick) []host.Announcement {
	var out []host.Announcement
	seen := make(map[int64]struct{}, len(agents))

	for i, a := range agents {
		if o.cfg.MaxScanned > 0 && i >= o.cfg.MaxScanned {
			break
		}
		if a.SirenOn || !host.IsFiniteVec(a.Position) || !host.IsFinite(a.Speed) {
			continue
		}
		seen[a.ID] = struct{}{}

		forward, lateral := host.Offset(t.Position, a.Position, t.HeadingDeg)
		pos := o.Classify(forward)
		closing := t.Speed-a.Speed > o.cfg.SpeedMargin

		rec, ok := o.records[a.ID]
		switch {
		case !ok:
			if pos == Ahead && closing && len(o.records) < o.cfg.MaxTracked {
				o.records[a.ID] = &OvertakeRecord{
					AgentID:   a.ID,
					State:     Ahead,
					Lateral:   lateral,
					FirstSeen: now,
					LastSeen:  now,
				}
			}
		case rec.State == Beside && pos == Behind && closing:
			delete(o.records, a.ID)
			if o.cooldown.TryFire(CategoryOvertake, now, o.cfg.CooldownTicks) {
				out = append(out, host.Announcement{
					Text:     passedText(rec.Lateral),
					Priority: host.PriorityLow,
					Tick:     now,
					Category: CategoryOvertake,
				})
			}
		default:
			rec.State = pos
			rec.Lateral = lateral
			rec.LastSeen = now
		}
	}

	o.sweep(seen, now)
	return out
}

// sweep drops records for agents missing from this scan and records older
// than StaleTicks, whatever their state.
func (o *OvertakeTracker) sweep(seen map[int64]struct{}, now timeutil.Tick) {
	toRemove := make([]int64, 0)
	for id, rec := range o.records {
		if _, ok := seen[id]; !ok || int64(now-rec.FirstSeen) > o.cfg.StaleTicks {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		delete(o.records, id)
	}
}

// Len returns the number of tracked agents.
func (o *OvertakeTracker) Len() int { return len(o.records) }

// Record returns a copy of the record for an agent.
func (o *OvertakeTracker) Record(id int64) (OvertakeRecord, bool) {
	rec, ok := o.records[id]
	if !ok {
		return OvertakeRecord{}, false
	}
	return *rec, true
}

// Reset drops every record.
func (o *OvertakeTracker) Reset() {
	o.records = make(map[int64]*OvertakeRecord)
	o.cooldown.Reset()
}

func passedText(lateral float64) string {
	if lateral > 0 {
		return "Passed vehicle on the right"
	}
	return "Passed vehicle on the left"
}
