package search

// Bound indicates the type of bound stored in the transposition table.
type Bound uint8

const (
	Exact      Bound = iota // Exact score
	LowerBound              // Failed high (beta cutoff)
	UpperBound              // Failed low
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "unknown"
}

// Replacement selects how a slot already holding an entry is overwritten.
type Replacement uint8

const (
	// ReplaceDeeper keeps an entry from the current search unless the new
	// one was searched at least as deep. Entries of older searches are
	// always replaced.
	ReplaceDeeper Replacement = iota
	// ReplaceAlways overwrites the slot unconditionally.
	ReplaceAlways
)

// Entry represents an entry in the transposition table.
type Entry[M comparable] struct {
	Hash     uint64    // Full 64-bit hash
	Key      [2]uint64 // Full position encoding, checked when verification is on
	BestMove M
	HasMove  bool
	Score    int32 // Score (bounded by Bound)
	Depth    int16 // Remaining depth of the search that produced the entry
	Bound    Bound
	Age      uint8 // Generation for replacement
}

// TableStats are the cumulative counters of a table.
type TableStats struct {
	Probes     uint64
	Hits       uint64
	Stores     uint64
	Collisions uint64 // hash matched but the verification key did not
}

// Table is a fixed-size hash table of search results, indexed by the low
// bits of the position hash.
//
// A Table is not safe for concurrent use; one search runs per table.
type Table[M comparable] struct {
	entries []Entry[M]
	size    uint64
	mask    uint64
	age     uint8
	policy  Replacement
	verify  bool

	stats TableStats
}

// approximate footprint of one entry, used to turn megabytes into slots
const entrySize = 40

// NewTable creates a transposition table with the given size in MB.
// Hash verification is on and replacement is depth-preferred.
func NewTable[M comparable](sizeMB int) *Table[M] {
	if sizeMB < 1 {
		sizeMB = 1
	}
	return NewTableEntries[M](uint64(sizeMB) * 1024 * 1024 / entrySize)
}

// NewTableEntries creates a table with n slots rounded down to a power of 2.
func NewTableEntries[M comparable](n uint64) *Table[M] {
	if n < 1 {
		n = 1
	}
	n = roundDownToPowerOf2(n)
	return &Table[M]{
		entries: make([]Entry[M], n),
		size:    n,
		mask:    n - 1,
		policy:  ReplaceDeeper,
		verify:  true,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// SetReplacement changes the replacement policy.
func (tt *Table[M]) SetReplacement(p Replacement) {
	tt.policy = p
}

// SetVerify turns full-key verification of hits on or off. Without it two
// positions with the same 64-bit hash share an entry.
func (tt *Table[M]) SetVerify(on bool) {
	tt.verify = on
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *Table[M]) Probe(hash uint64, key [2]uint64) (Entry[M], bool) {
	tt.stats.Probes++

	entry := tt.entries[hash&tt.mask]
	if entry.Depth <= 0 || entry.Hash != hash {
		return Entry[M]{}, false
	}
	if tt.verify && entry.Key != key {
		tt.stats.Collisions++
		return Entry[M]{}, false
	}

	tt.stats.Hits++
	return entry, true
}

// Store saves a search result. Entries with depth < 1 are ignored.
func (tt *Table[M]) Store(hash uint64, key [2]uint64, depth, score int, bound Bound, best M, hasMove bool) {
	if depth < 1 {
		return
	}
	entry := &tt.entries[hash&tt.mask]

	if tt.policy == ReplaceDeeper && entry.Depth > 0 && entry.Age == tt.age && depth < int(entry.Depth) {
		return
	}

	tt.stats.Stores++
	*entry = Entry[M]{
		Hash:     hash,
		Key:      key,
		BestMove: best,
		HasMove:  hasMove,
		Score:    int32(score),
		Depth:    int16(depth),
		Bound:    bound,
		Age:      tt.age,
	}
}

// NewSearch increments the age counter for a new search.
func (tt *Table[M]) NewSearch() {
	tt.age++
}

// Clear empties the table and resets the counters.
func (tt *Table[M]) Clear() {
	clear(tt.entries)
	tt.age = 0
	tt.stats = TableStats{}
}

// HashFull returns the permille (parts per thousand) of the table that is used
// by the current search.
func (tt *Table[M]) HashFull() int {
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Depth > 0 && tt.entries[i].Age == tt.age {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *Table[M]) HitRate() float64 {
	if tt.stats.Probes == 0 {
		return 0
	}
	return float64(tt.stats.Hits) / float64(tt.stats.Probes) * 100
}

// Stats returns the cumulative counters.
func (tt *Table[M]) Stats() TableStats {
	return tt.stats
}

// Size returns the number of entries in the table.
func (tt *Table[M]) Size() uint64 {
	return tt.size
}
