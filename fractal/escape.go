package fractal

// DefaultIterationCeiling is the most iterations any single point is given.
// The fragment shader needs a compile-time loop bound, and the CPU path uses
// the same bound so both renders agree.
const DefaultIterationCeiling uint32 = 3000

const escapeRadiusSquared = 4.0

// Result is the outcome of iterating one point.
// Escaped is false when the iteration cap was reached first.
type Result struct {
	Iterations uint32
	Escaped    bool
}

// Evaluator runs the escape-time iteration z ← z² + c.
type Evaluator struct {
	// Ceiling bounds every requested iteration count.
	// Zero means DefaultIterationCeiling.
	Ceiling uint32
}

func NewEvaluator(ceiling uint32) Evaluator {
	return Evaluator{Ceiling: ceiling}
}

func (e Evaluator) ceiling() uint32 {
	if e.Ceiling == 0 {
		return DefaultIterationCeiling
	}
	return e.Ceiling
}

// Clamp returns maxIterations limited to [1, ceiling].
func (e Evaluator) Clamp(maxIterations uint32) uint32 {
	if maxIterations < 1 {
		return 1
	}
	if c := e.ceiling(); maxIterations > c {
		return c
	}
	return maxIterations
}

// Evaluate iterates c starting from z = 0.
//
// The escape test |z|² > 4 runs before every update and once more after the
// last one. Iterations is the number of completed updates when escape was
// seen, so any |c| > 2 escapes with Iterations == 1 whatever the cap.
func (e Evaluator) Evaluate(c complex128, maxIterations uint32) Result {
	max := e.Clamp(maxIterations)
	cr, ci := real(c), imag(c)

	var zr, zi float64
	for i := uint32(0); ; i++ {
		zr2, zi2 := zr*zr, zi*zi
		if zr2+zi2 > escapeRadiusSquared {
			return Result{Iterations: i, Escaped: true}
		}
		if i == max {
			return Result{Iterations: max, Escaped: false}
		}
		zr, zi = zr2-zi2+cr, 2*zr*zi+ci
	}
}

// Evaluate uses the default iteration ceiling.
func Evaluate(c complex128, maxIterations uint32) Result {
	return Evaluator{}.Evaluate(c, maxIterations)
}
