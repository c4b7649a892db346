package adore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tesnetFile = []byte(`*SET*X-COORDINATES
2
    4     (4E14.6)
  0.000000E+00  1.000000E+00  1.000000E+00  0.000000D+00
ENDSET
------------------------------------------------------------------------
*SET*Y-COORDINATES
2
    4     (3E14.6)
  0.000000E+00  0.000000E+00  1.000000E+00
  1.000000E+00
ENDSET
------------------------------------------------------------------------
*SET*ELEMENT NODES 1
2
    2     (10I8)
       1       1
ENDSET
*SET*ELEMENT NODES 2
2
    2     (10I8)
       2       3
ENDSET
*SET*ELEMENT NODES 3
2
    2     (10I8)
       3       4
ENDSET
*SET*NUMBER OF NODES
1
4
*TEXT*SOURCE NAMES
2
    2     (2A8)
   WELL1   WELL2
ENDTEXT
`)

func TestFormat(t *testing.T) {
	{ // Test descriptors
		f, err := ParseFormat("(13E6.4)")
		require.NoError(t, err)
		assert.Equal(t, Format{Rep: 13, Type: 'E', Width: 6, Prec: 4}, f)
		assert.Equal(t, "13E6.4", f.String())
		f, err = ParseFormat("10i8")
		require.NoError(t, err)
		assert.Equal(t, Format{Rep: 10, Type: 'I', Width: 8, Prec: -1}, f)
		assert.Equal(t, "10I8", f.String())
		assert.Equal(t, "%8d", f.verb())
		f, _ = ParseFormat("5F12.3")
		assert.Equal(t, "%12.3f", f.verb())
	}
	{ // Test invalid descriptors
		for _, s := range []string{"", "E6.4", "13X6", "0E6.4", "13E"} {
			_, err := ParseFormat(s)
			assert.Error(t, err, s)
		}
	}
}

func TestScan(t *testing.T) {
	c, err := Scan(bytes.NewReader(tesnetFile))
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())
	{ // Test array blocks
		x, ok := c.FindFirst("x-coord")
		require.True(t, ok)
		assert.Equal(t, []float64{0, 1, 1, 0}, x.Numbers)
		y, err := c.Require("Y-COORDINATES")
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 1, 1}, y.Numbers)
		e2, ok := c.Get("ELEMENT NODES 2")
		require.True(t, ok)
		ints, err := e2.Ints()
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, ints)
	}
	{ // Test constant and text blocks
		n, err := c.Require("number of")
		require.NoError(t, err)
		assert.True(t, n.Constant)
		v, err := n.Value(17)
		require.NoError(t, err)
		assert.Equal(t, 4., v)
		names, err := c.Require("SOURCE")
		require.NoError(t, err)
		assert.Equal(t, []string{"WELL1", "WELL2"}, names.Text)
		_, err = names.Value(0)
		assert.Error(t, err)
		_, err = c.Require("HEAD")
		assert.Error(t, err)
	}
	{ // Test truncated input
		cut := bytes.Index(tesnetFile, []byte("  1.000000E+00\nENDSET"))
		_, err := Scan(bytes.NewReader(tesnetFile[:cut]))
		assert.Error(t, err)
		_, err = Scan(strings.NewReader("*SET*A\n3\n"))
		assert.Error(t, err)
		_, err = Scan(strings.NewReader("*SET*A\n2\n    2     (2E8.2)\n    1.00   abc\n"))
		assert.Error(t, err)
	}
}

func TestWrite(t *testing.T) {
	c, err := Scan(bytes.NewReader(tesnetFile))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Contains(t, buf.String(), "*SET*ELEMENT NODES 1\n2\n    2     (10I8)\n       1       1\nENDSET\n"+
		strings.Repeat("-", 72)+"\n")
	assert.Contains(t, buf.String(), "*SET*Y-COORDINATES\n2\n    4     (3E14.6)\n"+
		"  0.000000e+00  0.000000e+00  1.000000e+00\n  1.000000e+00\nENDSET\n")
	assert.Contains(t, buf.String(), "*SET*NUMBER OF NODES\n1\n4.00000\n")
	back, err := Scan(&buf)
	require.NoError(t, err)
	require.Equal(t, c.Len(), back.Len())
	for i, b := range c.Blocks() {
		assert.Equal(t, b, back.Blocks()[i])
	}
}

func TestBlockNames(t *testing.T) {
	b, err := NewBlock("HEAD,TIME:   12.5000", Format{Rep: 5, Type: 'E', Width: 12, Prec: 4}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, 12.5, b.Time)
	assert.Equal(t, "HEAD", b.RootName())
	b.SetTime(3)
	assert.Equal(t, "HEAD,TIME:    3.0000", b.Name)
	b.SetRootName("FLUX")
	assert.Equal(t, "FLUX,TIME:    3.0000", b.Name)
	assert.Equal(t, "FLUX,TIME:    3.0000[1]", b.String())

	plain := &Block{Name: "K-VALUES"}
	plain.SetRootName("KD")
	assert.Equal(t, "KD", plain.Name)

	_, err = NewBlock("HEAD,TIME:soon", DefaultFormat, nil)
	assert.Error(t, err)

	frac := &Block{Name: "F", Format: DefaultFormat, Numbers: []float64{1, 1.5}}
	_, err = frac.Ints()
	assert.Error(t, err)
}

func headCollection(t *testing.T, times []float64, offset float64) *Collection {
	c := NewCollection()
	for _, tm := range times {
		b, err := NewBlock("HEAD", Format{Rep: 4, Type: 'E', Width: 14, Prec: 6},
			[]float64{offset + tm, 2 * (offset + tm)})
		require.NoError(t, err)
		b.SetTime(tm)
		c.Add(b)
	}
	other, err := NewBlock("FLUX", Format{Rep: 4, Type: 'E', Width: 14, Prec: 6}, []float64{-1})
	require.NoError(t, err)
	c.Add(other)
	return c
}

func TestValues(t *testing.T) {
	c := headCollection(t, []float64{2, 0, 1}, 0)
	v := NewValues(c, "head")
	assert.Equal(t, []float64{0, 1, 2}, v.Times())
	val, err := v.Value(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4., val)
	series, err := v.Series(0)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0, 0}, {1, 1}, {2, 2}}, series)
	require.NoError(t, v.SetSeries(1, []float64{7, 8, 9}))
	series, err = v.Series(1)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0, 7}, {1, 8}, {2, 9}}, series)
	assert.Error(t, v.SetSeries(1, []float64{1}))
	assert.Error(t, v.SetSeries(5, []float64{1, 2, 3}))
	_, err = v.Value(0, 3)
	assert.Error(t, err)
}

func TestStitch(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, c *Collection) {
		var buf bytes.Buffer
		require.NoError(t, c.Write(&buf))
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
	}
	write("run_10.flo", headCollection(t, []float64{0, 1, 2}, 100))
	write("later/run_11.FLO", headCollection(t, []float64{5, 6, 7}, 200))
	write("run.flo", headCollection(t, []float64{0}, 300))
	write("run_12.txt", headCollection(t, []float64{0}, 400))

	snaps, err := FindSnapshots(dir)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 10., snaps[0].Start)
	assert.Equal(t, 11., snaps[1].Start)

	blocks, err := Stitch(context.Background(), snaps, "HEAD", 2)
	require.NoError(t, err)
	require.Len(t, blocks, 4)
	var times, first []float64
	for _, b := range blocks {
		times = append(times, b.Time)
		first = append(first, b.Numbers[0])
	}
	assert.Equal(t, []float64{10, 11, 12, 13}, times)
	// 11 and 12 come from the earlier snapshot, 13 only exists in the later one
	assert.Equal(t, []float64{100, 101, 102, 207}, first)
	assert.Equal(t, "HEAD,TIME:   13.0000", blocks[3].Name)

	blocks, err = Stitch(context.Background(), snaps, "MISSING", 0)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	_, err = Stitch(context.Background(), []Snapshot{{Start: 1, Path: filepath.Join(dir, "absent_1.flo")}}, "HEAD", 1)
	assert.Error(t, err)
}
