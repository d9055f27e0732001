package oracle

import "sync/atomic"

// KeyRing hands out API credentials round-robin. The counter is atomic so a
// single oracle instance can serve concurrent games; a race would only skew
// the rotation, never the chosen move.
type KeyRing struct {
	keys []string
	next atomic.Uint64
}

func NewKeyRing(keys []string) *KeyRing {
	return &KeyRing{keys: keys}
}

// Next - returns the next credential, advancing and wrapping the index.
func (that *KeyRing) Next() string {
	if len(that.keys) == 0 {
		return ""
	}

	n := that.next.Add(1) - 1

	return that.keys[n%uint64(len(that.keys))]
}

func (that *KeyRing) Len() int {
	return len(that.keys)
}
