package adore

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Values is the transient view of all blocks that share a root name, keyed by block time
type Values struct {
	Name   string
	byTime map[float64]*Block
}

func NewValues(c *Collection, name string) *Values {
	v := &Values{Name: name, byTime: make(map[float64]*Block)}
	for _, b := range c.Blocks() {
		if strings.EqualFold(b.RootName(), name) {
			v.byTime[b.Time] = b
		}
	}
	return v
}

// Times returns the block times in ascending order
func (v *Values) Times() (times []float64) {
	times = make([]float64, 0, len(v.byTime))
	for t := range v.byTime {
		times = append(times, t)
	}
	sort.Float64s(times)
	return
}

func (v *Values) At(time float64) (*Block, error) {
	b, ok := v.byTime[time]
	if !ok {
		return nil, errors.Errorf("%s: no block at time %g", v.Name, time)
	}
	return b, nil
}

func (v *Values) Value(index int, time float64) (float64, error) {
	b, err := v.At(time)
	if err != nil {
		return 0, err
	}
	return b.Value(index)
}

// Series returns (time, value) pairs for one index over all times
func (v *Values) Series(index int) (series [][2]float64, err error) {
	for _, t := range v.Times() {
		var val float64
		if val, err = v.Value(index, t); err != nil {
			return nil, err
		}
		series = append(series, [2]float64{t, val})
	}
	return
}

// SetSeries writes one value per time, in ascending time order, at index
func (v *Values) SetSeries(index int, series []float64) error {
	times := v.Times()
	if len(series) != len(times) {
		return errors.Errorf("%s: have %d values for %d times", v.Name, len(series), len(times))
	}
	for i, t := range times {
		b := v.byTime[t]
		if b.IsText() || b.Constant || index < 0 || index >= len(b.Numbers) {
			return errors.Errorf("%s: cannot set index %d at time %g", v.Name, index, t)
		}
		b.Numbers[index] = series[i]
	}
	return nil
}
