// Package lyra2 implements the Lyra2 memory-hard password hashing scheme:
// a sponge over a single round of Blake2b's compression function, driving
// reads and writes across an R x C matrix of 96 byte blocks.
//
// Every invocation owns its matrix and sponge. Calls are safe to run
// concurrently with each other, but a single call is strictly sequential.
package lyra2

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// MaxMemoryBytes bounds the matrix a single invocation may allocate.
const MaxMemoryBytes = 1 << 34

// Version selects how the wandering phase picks the row it revisits.
type Version int

const (
	// V2 takes the row from the first word of the sponge state.
	V2 Version = iota
	// V3 takes it from a state word chosen by the previous pick, as
	// Lyra2REv3 does. Rows must be a power of two.
	V3
)

// Params are the cost parameters of a Lyra2 invocation.
type Params struct {
	// TimeCost is the number of wandering passes over the matrix.
	TimeCost uint64
	// Rows is the number of matrix rows, at least 3. It need not be a
	// power of two unless Version is V3.
	Rows uint64
	// Cols is the number of 12 word blocks per row.
	Cols uint64
	// Version is V2 when left zero.
	Version Version
}

// Validate checks the parameters without allocating anything.
func (p Params) Validate() error {
	if p.TimeCost < 1 {
		return errors.Wrapf(ErrInvalidParameter, "time cost %d, need at least 1", p.TimeCost)
	}
	if p.Rows < 3 {
		return errors.Wrapf(ErrInvalidParameter, "%d rows, need at least 3", p.Rows)
	}
	if p.Cols < 1 {
		return errors.Wrapf(ErrInvalidParameter, "%d columns, need at least 1", p.Cols)
	}
	if p.Cols > maxMemory/blockLenBytes ||
		p.Rows > maxMemory/(p.Cols*blockLenBytes) {
		return errors.Wrapf(ErrInvalidParameter, "%d x %d matrix is over %d bytes",
			p.Rows, p.Cols, maxMemory)
	}
	switch p.Version {
	case V2:
	case V3:
		if p.Rows&(p.Rows-1) != 0 {
			return errors.Wrapf(ErrInvalidParameter, "%d rows, version 3 needs a power of two", p.Rows)
		}
	default:
		return errors.Wrapf(ErrInvalidParameter, "version %d", p.Version)
	}
	return nil
}

// maxMemory is MaxMemoryBytes, lowered to what an int can index.
var maxMemory = min(uint64(MaxMemoryBytes), uint64(math.MaxInt))

// MemoryBytes is the size of the matrix these parameters allocate. It
// saturates at math.MaxUint64 for parameters Validate would reject.
func (p Params) MemoryBytes() uint64 {
	hi, n := bits.Mul64(p.Rows, p.Cols)
	if hi != 0 {
		return math.MaxUint64
	}
	hi, n = bits.Mul64(n, blockLenBytes)
	if hi != 0 {
		return math.MaxUint64
	}
	return n
}

func (p Params) capacityWords() uint64 {
	return p.Rows * p.Cols * blockLenInt64
}

// Hasher runs Lyra2 with fixed parameters. Tracer may be nil.
type Hasher struct {
	Params
	Tracer Tracer
}

// Sum returns outLen bytes derived from pwd and salt with the given time
// cost and matrix dimensions.
func Sum(outLen int, pwd, salt []byte, timeCost, nRows, nCols uint64) ([]byte, error) {
	h := Hasher{Params: Params{TimeCost: timeCost, Rows: nRows, Cols: nCols}}
	return h.Sum(outLen, pwd, salt)
}

// Sum returns outLen bytes derived from pwd and salt. Parameters and input
// size are checked before the matrix is allocated.
func (h *Hasher) Sum(outLen int, pwd, salt []byte) ([]byte, error) {
	if outLen < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "output length %d", outLen)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	need := uint64(inputBlocks(len(pwd), len(salt)) * blockLenBlake2SafeInt64)
	if have := h.capacityWords(); need > have {
		return nil, errors.Wrapf(ErrCapacityExceeded,
			"%d byte password and %d byte salt need %d words, matrix has %d",
			len(pwd), len(salt), need, have)
	}

	r := &run{
		m:      newMatrix(int(h.Rows), int(h.Cols)),
		s:      newSponge(),
		tracer: h.Tracer,
	}
	defer r.wipe()

	nBlocks := r.m.loadInput(outLen, pwd, salt, h.Params)
	for i := 0; i < nBlocks; i++ {
		r.s.absorbBlockBlake2Safe(r.m.words[i*blockLenBlake2SafeInt64:])
	}

	r.setup()
	r.wander(h.TimeCost, h.Version)

	out := make([]byte, outLen)
	r.wrapUp(out)
	return out, nil
}

// run is the state of one invocation.
type run struct {
	m      *matrix
	s      *sponge
	tracer Tracer

	// last rows used, carried from one phase to the next
	prev int
	rowa int
}

func (r *run) visit(v Visit) {
	if r.tracer != nil {
		r.tracer.Visit(v)
	}
}

// setup fills the matrix. Rows 0 and 1 are seeded from the sponge, every
// later row is derived from the previous one and a row picked from a
// revisitation window that doubles each time it is walked through.
func (r *run) setup() {
	m, s := r.m, r.s
	last := m.cols - 1

	for col := 0; col < m.cols; col++ {
		s.squeezeBlock(m.block(0, last-col))
	}
	r.visit(Visit{Phase: PhaseSetup, Row: 0, Prev: -1, RowA: -1})

	for col := 0; col < m.cols; col++ {
		s.duplexBlock(m.block(0, col), m.block(1, last-col))
	}
	r.visit(Visit{Phase: PhaseSetup, Row: 1, Prev: 0, RowA: -1})

	prev, rowa := 1, 0
	step, window, gap := 1, 2, 1
	for row := 2; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			s.duplexSetup(m.block(prev, col), m.block(rowa, col), m.block(row, last-col))
		}
		r.visit(Visit{Phase: PhaseSetup, Row: row, Prev: prev, RowA: rowa})

		rowa = (rowa + step) & (window - 1)
		prev = row
		if rowa == 0 {
			step = window + gap
			window *= 2
			gap = -gap
		}
	}
	r.prev, r.rowa = prev, rowa
}

// wander makes timeCost passes over the matrix. Odd passes stride by
// R/2-1, even passes walk backwards; each pass ends when the row cursor
// comes back to 0. The revisited row is chosen by the sponge.
func (r *run) wander(timeCost uint64, v Version) {
	m, s := r.m, r.s
	nRows := uint64(m.rows)
	prev, rowa := r.prev, r.rowa
	var instance uint64

	row := 0
	for tau := uint64(1); tau <= timeCost; tau++ {
		step := -1
		if tau%2 == 1 {
			step = m.rows/2 - 1
		}
		for {
			if v == V3 {
				instance = s[instance%16]
				rowa = int(s[instance%16] % nRows)
			} else {
				rowa = int(s[0] % nRows)
			}
			for col := 0; col < m.cols; col++ {
				s.duplex(m.block(prev, col), m.block(rowa, col), m.block(row, col))
			}
			r.visit(Visit{Phase: PhaseWandering, Tau: tau, Row: row, Prev: prev, RowA: rowa})

			prev = row
			row = euclidMod(row+step, m.rows)
			if row == 0 {
				break
			}
		}
	}
	r.prev, r.rowa = prev, rowa
}

// wrapUp absorbs the first block of the last revisited row and squeezes
// the output.
func (r *run) wrapUp(out []byte) {
	r.s.absorbBlock(r.m.block(r.rowa, 0))
	r.visit(Visit{Phase: PhaseWrapUp, Row: r.rowa, Prev: -1, RowA: r.rowa})
	r.s.squeeze(out)
}

func (r *run) wipe() {
	r.m.wipe()
	r.s.wipe()
}

func euclidMod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
