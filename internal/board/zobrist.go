package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristStone      [2][64]uint64 // [Color][Square]
	zobristFlip       [64]uint64    // zobristStone[Black][sq] ^ zobristStone[White][sq]
	zobristSideToMove uint64        // XOR when white to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := Black; c <= White; c++ {
		for sq := A1; sq <= H8; sq++ {
			zobristStone[c][sq] = rng.next()
		}
	}
	for sq := A1; sq <= H8; sq++ {
		zobristFlip[sq] = zobristStone[Black][sq] ^ zobristStone[White][sq]
	}

	zobristSideToMove = rng.next()
}

// ZobristSideToMove returns the Zobrist key for white to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// computeHash calculates the Zobrist hash of both occupancy masks from scratch.
func computeHash(black, white Bitboard) uint64 {
	var h uint64
	for black != 0 {
		h ^= zobristStone[Black][black.PopLSB()]
	}
	for white != 0 {
		h ^= zobristStone[White][white.PopLSB()]
	}
	return h
}
