package models

import (
	"bytes"
	"sync"
)

type DiscacheEntry struct {
	Addr uint64
	Mem  []byte
	Dis  []Ins
}

// Discache remembers decoded instructions by address, keyed on the exact
// bytes they were decoded from so a patched image misses the cache.
type Discache struct {
	sync.RWMutex
	cache map[uint64]*DiscacheEntry
}

func NewDiscache() *Discache {
	return &Discache{cache: make(map[uint64]*DiscacheEntry)}
}

func (d *Discache) Get(addr uint64, mem []byte) *DiscacheEntry {
	d.RLock()
	defer d.RUnlock()
	if ent, ok := d.cache[addr]; ok && bytes.Equal(mem, ent.Mem) {
		return ent
	}
	return nil
}

func (d *Discache) Put(addr uint64, mem []byte, dis []Ins) {
	tmp := make([]byte, len(mem))
	copy(tmp, mem)
	d.Lock()
	d.cache[addr] = &DiscacheEntry{Addr: addr, Mem: tmp, Dis: dis}
	d.Unlock()
}

func (d *Discache) Len() int {
	d.RLock()
	defer d.RUnlock()
	return len(d.cache)
}
