package assist

import "github.com/banshee-data/velocity.assist/internal/host"

// recordingSink forwards announcements to the host sink and the recorder
// and counts them per tick.
type recordingSink struct {
	next  host.AnnouncementSink
	rec   Recorder
	count int
}

func (r *recordingSink) Announce(a host.Announcement) error {
	r.count++
	if r.rec != nil {
		if err := r.rec.RecordAnnouncement(a); err != nil {
			logf("record announcement failed: %v", err)
		}
	}
	if r.next == nil {
		return nil
	}
	return r.next.Announce(a)
}
