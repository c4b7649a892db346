package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/tesnet/adore"
	"github.com/notargets/tesnet/export"
)

var squareSU2 = []byte(`NDIME= 2
NELEM= 2
5 0 1 2 0
5 0 2 3 1
NPOIN= 4
0 0 0
1 0 1
1 1 2
0 1 3
NMARK= 1
MARKER_TAG= wall
MARKER_ELEMS= 4
3 0 1
3 1 2
3 2 3
3 3 0
`)

func newExportCmd() *cobra.Command {
	c := &cobra.Command{Use: "export"}
	addExportFlags(c)
	return c
}

func TestProcessInput(t *testing.T) {
	dir := t.TempDir()
	ipFile := filepath.Join(dir, "export.yaml")
	require.NoError(t, os.WriteFile(ipFile, []byte(`
Title: Test Case
GridFile: from-file.su2
OutputDir: from-file
ParallelDegree: 3
WriteReport: false
`), 0644))
	{ // Test the parameters file and flags combine, flags win
		c := newExportCmd()
		require.NoError(t, c.Flags().Parse([]string{"-I", ipFile, "-o", "from-flag", "--skip", "nodes,voronoi"}))
		ep, err := processInput(c)
		require.NoError(t, err)
		assert.Equal(t, "Test Case", ep.Title)
		assert.Equal(t, "from-file.su2", ep.GridFile)
		assert.Equal(t, "from-flag", ep.OutputDir)
		assert.Equal(t, 3, ep.ParallelDegree)
		assert.False(t, ep.WriteNodes)
		assert.True(t, ep.WriteElements)
		assert.False(t, ep.WriteVoronoi)
		assert.False(t, ep.WriteReport)
	}
	{ // Test missing grid file and bad outputs
		c := newExportCmd()
		_, err := processInput(c)
		assert.Error(t, err)
		c = newExportCmd()
		require.NoError(t, c.Flags().Parse([]string{"-F", "grid.su2", "--skip", "pictures"}))
		_, err = processInput(c)
		assert.Error(t, err)
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	grid := filepath.Join(dir, "square.su2")
	require.NoError(t, os.WriteFile(grid, squareSU2, 0644))
	{ // Test export end to end
		out := filepath.Join(dir, "out")
		rootCmd.SetArgs([]string{"export", "-F", grid, "-o", out, "-p", "2"})
		require.NoError(t, rootCmd.Execute())
		data, err := os.ReadFile(filepath.Join(out, export.VoronoiJSON))
		require.NoError(t, err)
		fc, err := geojson.UnmarshalFeatureCollection(data)
		require.NoError(t, err)
		assert.Len(t, fc.Features, 4)
		assert.FileExists(t, filepath.Join(out, export.ReportFile))
		assert.FileExists(t, filepath.Join(out, export.NodesFile))
	}
	{ // Test stats
		var buf bytes.Buffer
		require.NoError(t, RunStats(&buf, grid, 2, true))
		assert.Contains(t, buf.String(), "Elements:       2")
		assert.Contains(t, buf.String(), "Dual cells: 4 (4 on the boundary), 0 failed")
		assert.Contains(t, buf.String(), "Markers: 1, unmarked boundary edges: 0, marker edges off the boundary: 0")
		assert.Error(t, RunStats(&buf, filepath.Join(dir, "absent.su2"), 1, false))
	}
	{ // Test stitch
		flo := filepath.Join(dir, "flo")
		require.NoError(t, os.MkdirAll(flo, 0755))
		for _, snap := range []struct {
			name  string
			times []float64
		}{{"run_0.flo", []float64{0, 1}}, {"run_2.flo", []float64{10, 11}}} {
			c := adore.NewCollection()
			for _, tm := range snap.times {
				b, err := adore.NewBlock("HEAD", adore.Format{Rep: 4, Type: 'E', Width: 14, Prec: 6}, []float64{tm})
				require.NoError(t, err)
				b.SetTime(tm)
				c.Add(b)
			}
			var buf bytes.Buffer
			require.NoError(t, c.Write(&buf))
			require.NoError(t, os.WriteFile(filepath.Join(flo, snap.name), buf.Bytes(), 0644))
		}
		dest := filepath.Join(dir, "merged.flo")
		require.NoError(t, RunStitch(flo, "head", dest, 2))
		c, err := adore.ReadFile(dest)
		require.NoError(t, err)
		v := adore.NewValues(c, "HEAD")
		assert.Equal(t, []float64{0, 1, 2, 3}, v.Times())
		assert.Error(t, RunStitch(filepath.Join(dir, "out"), "head", dest, 2))
	}
}
