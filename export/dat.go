package export

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/notargets/tesnet/mesh"
)

// WriteNodes writes one "x,y" line per node
func WriteNodes(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Nodes() {
		bw.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "writing nodes")
}

// WriteElements writes one "a,b,c" line per element with 0-based node indices in normalized order
func WriteElements(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for k := 0; k < m.NumElements(); k++ {
		el := m.Element(k)
		for i, n := range el {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(n))
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "writing elements")
}
