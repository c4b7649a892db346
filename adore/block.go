package adore

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Block is one named record. Numeric blocks hold Numbers, text blocks hold Text. A constant block
// holds a single value that applies to every index.
type Block struct {
	Name     string
	Format   Format
	Constant bool
	Time     float64
	Numbers  []float64
	Text     []string
}

const timeTag = ",TIME:"

// NewBlock creates an array block, the time is taken from the name when it carries one
func NewBlock(name string, format Format, numbers []float64) (b *Block, err error) {
	b = &Block{Name: name, Format: format, Numbers: numbers}
	if err = b.parseTime(); err != nil {
		return nil, err
	}
	return
}

func (b *Block) parseTime() error {
	i := strings.Index(strings.ToUpper(b.Name), timeTag[:5])
	if i < 1 {
		return nil
	}
	tail := strings.TrimSpace(strings.TrimPrefix(b.Name[i+5:], ":"))
	t, err := strconv.ParseFloat(tail, 64)
	if err != nil {
		return errors.Wrapf(err, "block %q: invalid time", b.Name)
	}
	b.Time = t
	return nil
}

// RootName is the name up to the first comma
func (b *Block) RootName() string {
	if i := strings.Index(b.Name, ","); i > 0 {
		return b.Name[:i]
	}
	return b.Name
}

func (b *Block) SetRootName(root string) {
	if i := strings.Index(b.Name, ","); i >= 0 {
		b.Name = root + b.Name[i:]
		return
	}
	b.Name = root
}

// SetTime updates the time and rewrites the name as ROOT,TIME:<time>
func (b *Block) SetTime(t float64) {
	b.Time = t
	b.Name = fmt.Sprintf("%s%s%10.4f", b.RootName(), timeTag, t)
}

func (b *Block) IsText() bool { return b.Format.IsText() }

// Count is the number of stored values, 1 for a constant block
func (b *Block) Count() int {
	if b.IsText() {
		return len(b.Text)
	}
	return len(b.Numbers)
}

// Value returns value i, a constant block returns its single value for every i
func (b *Block) Value(i int) (v float64, err error) {
	if b.IsText() {
		return 0, errors.Errorf("block %q holds text", b.Name)
	}
	if b.Constant {
		i = 0
	}
	if i < 0 || i >= len(b.Numbers) {
		return 0, errors.Errorf("block %q: index %d outside [0,%d)", b.Name, i, len(b.Numbers))
	}
	return b.Numbers[i], nil
}

// Ints returns the values as integers, failing on fractional values
func (b *Block) Ints() (ints []int, err error) {
	if b.IsText() {
		return nil, errors.Errorf("block %q holds text", b.Name)
	}
	ints = make([]int, len(b.Numbers))
	for i, v := range b.Numbers {
		if v != math.Trunc(v) {
			return nil, errors.Errorf("block %q: value %d is not an integer: %g", b.Name, i, v)
		}
		ints[i] = int(v)
	}
	return
}

func (b *Block) String() string {
	return fmt.Sprintf("%s[%d]", b.Name, b.Count())
}

// parseValue reads one fixed-width field
func (b *Block) parseValue(field string) error {
	if b.IsText() {
		b.Text = append(b.Text, strings.TrimSpace(field))
		return nil
	}
	s := strings.TrimSpace(field)
	if b.Format.Type == 'E' || b.Format.Type == 'F' {
		s = strings.NewReplacer("D", "E", "d", "e").Replace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "block %q: value %d", b.Name, b.Count())
	}
	b.Numbers = append(b.Numbers, v)
	return nil
}
