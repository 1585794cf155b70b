package dynamo

// Trajectory holds one scheme's states, index-aligned with the Grid that
// produced it. Only the driver appends; callers treat it as read-only.
type Trajectory struct {
	Scheme string
	States []State
}

func NewTrajectory(scheme string, n int) *Trajectory {
	return &Trajectory{Scheme: scheme, States: make([]State, 0, n)}
}

func (t *Trajectory) Append(s State) { t.States = append(t.States, s) }

func (t *Trajectory) Len() int { return len(t.States) }

func (t *Trajectory) Final() State { return t.States[len(t.States)-1] }

func (t *Trajectory) Positions() []float64 {
	xs := make([]float64, len(t.States))
	for i, s := range t.States {
		xs[i] = s.Position
	}
	return xs
}

func (t *Trajectory) Velocities() []float64 {
	vs := make([]float64, len(t.States))
	for i, s := range t.States {
		vs[i] = s.Velocity
	}
	return vs
}

// FirstInvalid returns the first index holding a non-finite state, or -1.
func (t *Trajectory) FirstInvalid() int {
	for i, s := range t.States {
		if !s.IsValid() {
			return i
		}
	}
	return -1
}
