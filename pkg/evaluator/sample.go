package evaluator

import (
	"github.com/sandrolain/goroots/pkg/types"
)

// Point is one sample of a function.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sampler is anything that can be evaluated at a point.
type Sampler interface {
	Eval(x float64) (float64, error)
}

// Sample evaluates f at points evenly spaced values over [from, to], both
// ends included. Points where f is undefined are skipped, so fewer than
// points values may be returned. Errors other than ErrUndefined abort.
func Sample(f Sampler, from, to float64, points int) ([]Point, error) {
	if points < 2 {
		return nil, types.NewError(types.ErrInvalidInput, "at least 2 points are required", -1).
			WithField("points").WithExample("100")
	}
	if !(from < to) {
		return nil, types.NewError(types.ErrInvalidInput, "from must be less than to", -1).
			WithField("from").WithExample("from=-5 to=5")
	}

	step := (to - from) / float64(points-1)
	ret := make([]Point, 0, points)
	for i := 0; i < points; i++ {
		x := from + float64(i)*step
		if i == points-1 {
			x = to
		}
		y, err := f.Eval(x)
		if err != nil {
			if types.HasCode(err, types.ErrUndefined) {
				continue
			}
			return nil, err
		}
		ret = append(ret, Point{X: x, Y: y})
	}
	return ret, nil
}
