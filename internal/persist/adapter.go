package persist

import (
	"context"
	"fmt"
)

// DefaultKey names the single save slot.
const DefaultKey = "saveState"

// Adapter moves packed buffers between an engine and a Store.
type Adapter struct {
	store Store
	key   string
}

// NewAdapter returns an adapter writing to key in store.
func NewAdapter(store Store, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{store: store, key: key}
}

// Key returns the save slot name.
func (a *Adapter) Key() string { return a.key }

// Save stores a copy of buf.
func (a *Adapter) Save(ctx context.Context, buf []byte) error {
	value, err := Encode(buf)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.key, value)
}

// Available reports whether a save exists.
func (a *Adapter) Available(ctx context.Context) (bool, error) {
	_, ok, err := a.store.Get(ctx, a.key)
	return ok, err
}

// Load copies the saved bytes into dst. It reports false when there is no
// save. dst is left untouched unless the whole snapshot decodes and its
// length matches len(dst).
func (a *Adapter) Load(ctx context.Context, dst []byte) (bool, error) {
	raw, ok, err := a.store.Get(ctx, a.key)
	if err != nil || !ok {
		return false, err
	}
	saved, err := Decode(raw)
	if err != nil {
		return false, err
	}
	if len(saved) != len(dst) {
		return false, fmt.Errorf("%w: saved %d bytes, board has %d", ErrLengthMismatch, len(saved), len(dst))
	}
	copy(dst, saved)
	return true, nil
}
