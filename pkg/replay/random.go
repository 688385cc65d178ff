package replay

import "unicode/utf16"

// Mulberry32 is a small deterministic generator. Identical seeds give identical
// sequences on every platform, which keeps recorded replays reproducible.
type Mulberry32 struct {
	state uint32
}

// SeededRandom hashes seed with 32-bit FNV-1a over its UTF-16 code units and
// uses the hash as the generator state.
func SeededRandom(seed string) *Mulberry32 {
	h := uint32(2166136261)
	for _, unit := range utf16.Encode([]rune(seed)) {
		h ^= uint32(unit)
		h *= 16777619
	}
	return &Mulberry32{state: h}
}

// Float64 returns the next value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	h := m.state
	t := (h ^ (h >> 15)) * (1 | h)
	t ^= t + (t^(t>>7))*(61|t)
	return float64(t^(t>>14)) / 4294967296
}
