package interp

// Linear2 computes 2-point linear interpolation between x0 and x1.
// t is the blend weight in [0, 1); t=0 returns x0.
func Linear2(t, x0, x1 float64) float64 {
	return (1-t)*x0 + t*x1
}
