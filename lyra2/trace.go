package lyra2

// Phase identifies the stage of the algorithm a Visit belongs to.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseWandering
	PhaseWrapUp
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseWandering:
		return "wandering"
	case PhaseWrapUp:
		return "wrapup"
	}
	return "unknown"
}

// Visit describes one whole-row operation on the matrix. Row is the row
// written, Prev the row read as input and RowA the row revisited. Prev and
// RowA are -1 when the operation does not use them. Tau is the wandering
// iteration, starting at 1, and 0 outside the wandering phase.
type Visit struct {
	Phase Phase
	Tau   uint64
	Row   int
	Prev  int
	RowA  int
}

// A Tracer observes the order in which rows are touched. It sees row
// indices only, never matrix contents or state.
type Tracer interface {
	Visit(v Visit)
}

// Recorder is a Tracer that keeps every visit in order.
type Recorder struct {
	Visits []Visit
}

func (r *Recorder) Visit(v Visit) {
	r.Visits = append(r.Visits, v)
}

// Phase returns the recorded visits for one phase.
func (r *Recorder) Phase(p Phase) []Visit {
	var out []Visit
	for _, v := range r.Visits {
		if v.Phase == p {
			out = append(out, v)
		}
	}
	return out
}
