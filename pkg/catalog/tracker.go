package catalog

import (
	"context"
	"sync"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/room"
)

// WallFetcher fetches the module lists of one wall. *Client implements it.
type WallFetcher interface {
	GenerateWall(ctx context.Context, o layout.Orientation, lengthUnits float64, refresh bool) (room.WallModules, error)
}

var _ WallFetcher = (*Client)(nil)

// Ticket identifies one fetch started through a [Tracker].
type Ticket struct {
	Orientation layout.Orientation
	LengthUnits float64
	seq         uint64
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Tracker enforces one outstanding fetch per wall. It is safe for
// concurrent use.
type Tracker struct {
	fetcher WallFetcher

	mu     sync.Mutex
	seq    uint64
	latest map[layout.Orientation]inflight
}

// NewTracker wraps fetcher.
func NewTracker(fetcher WallFetcher) *Tracker {
	return &Tracker{fetcher: fetcher, latest: make(map[layout.Orientation]inflight)}
}

// Begin registers a new fetch for o and cancels the previous one for the
// same wall. The returned context is cancelled when a newer fetch begins.
func (t *Tracker) Begin(ctx context.Context, o layout.Orientation, lengthUnits float64) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.latest[o]; ok {
		prev.cancel()
	}
	t.seq++
	t.latest[o] = inflight{seq: t.seq, cancel: cancel}
	return ctx, Ticket{Orientation: o, LengthUnits: lengthUnits, seq: t.seq}
}

// Current reports whether tk is still the newest fetch for its wall.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.latest[tk.Orientation]
	return ok && cur.seq == tk.seq
}

// Finish releases tk. It returns SUPERSEDED if a newer fetch began for the
// same wall after tk.
func (t *Tracker) Finish(tk Ticket) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.latest[tk.Orientation]
	if !ok || cur.seq != tk.seq {
		return errors.New(errors.ErrCodeSuperseded,
			"%s wall (%g) superseded by a newer request", tk.Orientation, tk.LengthUnits)
	}
	cur.cancel()
	delete(t.latest, tk.Orientation)
	return nil
}

// GenerateWall fetches through the tracker. A response for a superseded
// request is discarded and SUPERSEDED is returned instead, even when the
// underlying call succeeded.
func (t *Tracker) GenerateWall(ctx context.Context, o layout.Orientation, lengthUnits float64, refresh bool) (room.WallModules, error) {
	fctx, tk := t.Begin(ctx, o, lengthUnits)
	mods, err := t.fetcher.GenerateWall(fctx, o, lengthUnits, refresh)
	if ferr := t.Finish(tk); ferr != nil {
		return room.WallModules{}, ferr
	}
	if err != nil {
		return room.WallModules{}, err
	}
	return mods, nil
}

var _ WallFetcher = (*Tracker)(nil)
