package calculator

import (
	"math"

	"ReservoirBench/internal/util"
)

// residualFunc evaluates the residual vector (observed - model) at the given
// parameters. Each call counts against the solver's evaluation budget.
type residualFunc func(params []float64) []float64

type solverOptions struct {
	MaxEvaluations int
	Tolerance      float64
}

const (
	initialLambda = 1e-3
	maxLambda     = 1e12
	// Forward-difference step scale, roughly sqrt of float64 epsilon.
	diffStep = 1.4901161193847656e-08
)

// levenbergMarquardt minimizes the squared norm of fn's residuals starting
// from guess, damping the Gauss-Newton step until it improves the cost.
// Returns the solution, the final sum of squared residuals, and the number
// of objective evaluations spent.
//
// Convergence: a near-zero cost gradient, a relative cost reduction below
// tolerance, or the damping factor maxing out after at least one accepted
// step (the cost floor). Failure: evaluation budget exhausted, non-finite
// residuals at or near the current point, or no step ever improving on the
// initial guess.
func levenbergMarquardt(fn residualFunc, guess []float64, opt solverOptions) ([]float64, float64, int, error) {
	n := len(guess)
	params := append([]float64(nil), guess...)

	evals := 0
	eval := func(p []float64) (res []float64, sse float64, ok bool, err error) {
		if evals >= opt.MaxEvaluations {
			return nil, 0, false, util.NoConvergencef("fit stopped after %d objective evaluations without converging", opt.MaxEvaluations)
		}
		evals++
		res = fn(p)
		for _, v := range res {
			if !finite(v) {
				return res, 0, false, nil
			}
			sse += v * v
		}
		return res, sse, true, nil
	}

	res, sse, ok, err := eval(params)
	if err != nil {
		return nil, 0, evals, err
	}
	if !ok {
		return nil, 0, evals, util.NoConvergence("initial guess produces non-finite residuals; adjust the starting parameters")
	}

	lambda := initialLambda
	accepted := 0
	for {
		// Forward-difference Jacobian of the residual vector.
		jac := make([][]float64, len(res))
		for i := range jac {
			jac[i] = make([]float64, n)
		}
		for j := 0; j < n; j++ {
			h := diffStep * math.Max(math.Abs(params[j]), 1)
			bumped := append([]float64(nil), params...)
			bumped[j] += h
			resB, _, okB, errB := eval(bumped)
			if errB != nil {
				return nil, 0, evals, errB
			}
			if !okB {
				return nil, 0, evals, util.NoConvergence("model left its numeric domain while estimating the Jacobian")
			}
			for i := range res {
				jac[i][j] = (resB[i] - res[i]) / h
			}
		}

		// Normal equations: (JtJ + lambda*diag(JtJ)) delta = -Jt r.
		jtj := make([][]float64, n)
		for a := range jtj {
			jtj[a] = make([]float64, n)
		}
		jtr := make([]float64, n)
		for i := range res {
			for a := 0; a < n; a++ {
				jtr[a] += jac[i][a] * res[i]
				for b := a; b < n; b++ {
					jtj[a][b] += jac[i][a] * jac[i][b]
				}
			}
		}
		for a := 0; a < n; a++ {
			for b := 0; b < a; b++ {
				jtj[a][b] = jtj[b][a]
			}
		}

		gradNorm := 0.0
		for a := 0; a < n; a++ {
			gradNorm = math.Max(gradNorm, math.Abs(jtr[a]))
		}
		if gradNorm <= opt.Tolerance*(1+sse) {
			return params, sse, evals, nil
		}

		// Damped step loop: raise lambda until a step reduces the cost.
		stepped := false
		for !stepped {
			aug := make([][]float64, n)
			rhs := make([]float64, n)
			for a := 0; a < n; a++ {
				aug[a] = append([]float64(nil), jtj[a]...)
				aug[a][a] += lambda * jtj[a][a]
				if aug[a][a] == 0 {
					aug[a][a] = lambda // guard fully-flat directions
				}
				rhs[a] = -jtr[a]
			}
			if delta, solvable := solveLinear(aug, rhs); solvable {
				cand := make([]float64, n)
				for a := 0; a < n; a++ {
					cand[a] = params[a] + delta[a]
				}
				resC, sseC, okC, errC := eval(cand)
				if errC != nil {
					return nil, 0, evals, errC
				}
				if okC && sseC < sse {
					reduction := sse - sseC
					params, res, sse = cand, resC, sseC
					accepted++
					lambda = math.Max(lambda/10, 1e-12)
					if reduction <= opt.Tolerance*math.Max(sseC, opt.Tolerance) {
						return params, sse, evals, nil
					}
					stepped = true
					continue
				}
			}
			lambda *= 10
			if lambda > maxLambda {
				if accepted > 0 {
					// Residuals bottomed out; this is the numerical optimum.
					return params, sse, evals, nil
				}
				return nil, 0, evals, util.NoConvergence("no step improves on the initial guess; residuals cannot be reduced")
			}
		}
	}
}

// solveLinear solves a*x = b in place by Gaussian elimination with partial
// pivoting. The systems here are at most 3x3.
func solveLinear(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-300 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]
		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] -= f * b[col]
		}
	}
	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, true
}
