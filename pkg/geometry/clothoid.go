package geometry

import "math"

// 16 point Gauss-Legendre rule on [-1,1].
var (
	gaussNodes = [16]float64{
		-0.9894009349916499, -0.9445750230732326, -0.8656312023878318, -0.7554044083550030,
		-0.6178762444026438, -0.4580167776572274, -0.2816035507792589, -0.0950125098376374,
		0.0950125098376374, 0.2816035507792589, 0.4580167776572274, 0.6178762444026438,
		0.7554044083550030, 0.8656312023878318, 0.9445750230732326, 0.9894009349916499,
	}
	gaussWeights = [16]float64{
		0.0271524594117541, 0.0622535239386479, 0.0951585116824928, 0.1246289712555339,
		0.1495959888165767, 0.1691565193950025, 0.1826034150449236, 0.1894506104550685,
		0.1894506104550685, 0.1826034150449236, 0.1691565193950025, 0.1495959888165767,
		0.1246289712555339, 0.0951585116824928, 0.0622535239386479, 0.0271524594117541,
	}
)

func integrate(f func(float64) float64, a, b float64) float64 {
	half := (b - a) / 2.0
	mid := (a + b) / 2.0
	sum := 0.0
	for i := 0; i < len(gaussNodes); i++ {
		sum += gaussWeights[i] * f(mid+half*gaussNodes[i])
	}
	return sum * half
}

// clothoidPose evaluates the pose s meters along an euler spiral that
// starts at (x, y) with heading h, initial curvature curvStart and linear
// curvature rate cdot. The tangent angle is closed form, the position is
// integrated numerically.
func clothoidPose(x, y, h, curvStart, cdot, s float64) (float64, float64, float64) {
	theta := func(t float64) float64 {
		return h + curvStart*t + 0.5*cdot*t*t
	}
	px := x + integrate(func(t float64) float64 { return math.Cos(theta(t)) }, 0, s)
	py := y + integrate(func(t float64) float64 { return math.Sin(theta(t)) }, 0, s)
	return px, py, theta(s)
}
