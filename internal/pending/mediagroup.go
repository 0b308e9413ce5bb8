package pending

import (
	"sync"
	"time"
)

// Group buffers the photos of one media-group burst together with the
// announcement context they complete.
type Group struct {
	ChatID       int64
	ThreadID     int
	MessageID    int
	SenderID     int64
	Caption      string
	ReplyText    string
	ReplyID      int
	ReplyPhotoID string

	Photos []string

	CreatedAt time.Time
}

// Collector buffers multi-photo bursts keyed by the transport's
// media-group id. A burst is drained exactly once: Claim takes the
// per-group lock and a second Claim for the same id is a no-op.
type Collector struct {
	mu     sync.Mutex
	groups map[string]*Group
	locks  map[string]bool
	now    func() time.Time
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		groups: make(map[string]*Group),
		locks:  make(map[string]bool),
		now:    time.Now,
	}
}

// Add appends a photo to the burst, creating the buffer from seed on
// the first photo. It returns the photo count and whether this photo
// opened the buffer; the caller schedules the debounced drain exactly
// once, on first=true.
func (c *Collector) Add(groupID, photoRef string, seed Group) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	group, ok := c.groups[groupID]
	if !ok {
		g := seed
		g.Photos = nil
		g.CreatedAt = c.now()
		group = &g
		c.groups[groupID] = group
	}

	group.Photos = append(group.Photos, photoRef)

	return len(group.Photos), !ok
}

// Claim locks the burst for processing and returns a snapshot of it.
// Returns false when the burst is unknown or already claimed.
func (c *Collector) Claim(groupID string) (Group, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locks[groupID] {
		return Group{}, false
	}

	group, ok := c.groups[groupID]
	if !ok {
		return Group{}, false
	}

	c.locks[groupID] = true

	g := *group
	g.Photos = append([]string(nil), group.Photos...)

	return g, true
}

// Release drops the buffer and the lock unconditionally. Called after
// processing, whether it succeeded or failed, so no state leaks.
func (c *Collector) Release(groupID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.groups, groupID)
	delete(c.locks, groupID)
}
