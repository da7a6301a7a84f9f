package diff_expr

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const minGroupSize = 2

// WelchResult holds the outcome of Welch's unequal-variance t-test.
// T is positive when group 1 has the larger mean.
type WelchResult struct {
	T      float64
	P      float64 // two-sided
	DF     float64 // Welch-Satterthwaite degrees of freedom
	N1, N2 int
	Mean1  float64
	Mean2  float64
	Var1   float64 // sample variance (n-1)
	Var2   float64
}

// WelchTTest compares the means of a and b without assuming equal variances.
// Both samples need at least two values; otherwise a *StatisticalError is
// returned. When both samples have zero variance the standard error is zero
// and T, P and DF are NaN.
func WelchTTest(a, b []float64) (WelchResult, error) {
	if len(a) < minGroupSize {
		return WelchResult{}, &StatisticalError{N: len(a)}
	}
	if len(b) < minGroupSize {
		return WelchResult{}, &StatisticalError{N: len(b)}
	}

	var r WelchResult
	r.N1, r.N2 = len(a), len(b)
	r.Mean1, r.Var1 = stat.MeanVariance(a, nil)
	r.Mean2, r.Var2 = stat.MeanVariance(b, nil)

	se1 := r.Var1 / float64(r.N1)
	se2 := r.Var2 / float64(r.N2)
	seSq := se1 + se2
	if seSq == 0 {
		r.T, r.P, r.DF = math.NaN(), math.NaN(), math.NaN()
		return r, nil
	}

	r.T = (r.Mean1 - r.Mean2) / math.Sqrt(seSq)
	r.DF = seSq * seSq / (se1*se1/float64(r.N1-1) + se2*se2/float64(r.N2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: r.DF}
	r.P = math.Min(1, 2*dist.Survival(math.Abs(r.T)))
	return r, nil
}
