package model

import (
	"sync"

	"github.com/pkg/errors"
)

// UniverseToPool returns a universe to the pool for reuse.
func UniverseToPool(u *Universe, pool *UniversePool) {
	if pool == nil {
		return
	}

	pool.Put(u)
}

// UniversePool recycles Universe buffers across restarts so a host
// that repeatedly tears down and re-creates grids of the same size
// avoids reallocating the cell storage each time.
type UniversePool struct {
	pool sync.Pool
}

func NewUniversePool() *UniversePool {
	return &UniversePool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Universe{}
			},
		},
	}
}

// Get retrieves a universe from the pool, reset to the requested
// dimensions with all cells Dead.
func (p *UniversePool) Get(width, height int) (*Universe, error) {
	u := p.pool.Get().(*Universe)
	if err := u.Reset(width, height); err != nil {
		// A rejected universe is still reusable for valid dimensions.
		p.pool.Put(u)
		return nil, errors.Wrap(err, "[Get] pooled universe reset failed")
	}
	return u, nil
}

// Put returns a universe to the pool, clearing its state first.
func (p *UniversePool) Put(u *Universe) {
	u.Clear()
	p.pool.Put(u)
}
