/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/tesnet/dual"
	"github.com/notargets/tesnet/geometry2D"
	"github.com/notargets/tesnet/mesh"
	"github.com/notargets/tesnet/readfiles"
)

// StatsCmd represents the stats command
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print mesh statistics",
	Long:  `Reads a mesh, builds its topology and prints node, element and edge counts. SU2 marker edges are checked against the mesh boundary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gridFile, _ := cmd.Flags().GetString("gridFile")
		trace, _ := cmd.Flags().GetBool("trace")
		parallelDegree, _ := cmd.Flags().GetInt("parallelDegree")
		return RunStats(os.Stdout, gridFile, parallelDegree, trace)
	},
}

func RunStats(w io.Writer, gridFile string, parallelDegree int, trace bool) (err error) {
	m, markers, err := readfiles.ReadMeshFile(gridFile)
	if err != nil {
		return
	}
	box := geometry2D.Bounds(m.Nodes())
	topo, err := mesh.BuildTopology(m, mesh.Options{ParallelDegree: parallelDegree})
	if err != nil {
		return
	}
	topo.Statistics().Print(w)
	fmt.Fprintf(w, "Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
		box.Min.X, box.Max.X, box.Min.Y, box.Max.Y)
	if markers != nil {
		unmarked, stray := markers.Check(topo.Adjacency.BoundaryEdges(m))
		fmt.Fprintf(w, "Markers: %d, unmarked boundary edges: %d, marker edges off the boundary: %d\n",
			len(markers), len(unmarked), len(stray))
		for _, en := range unmarked {
			fmt.Fprintf(w, "unmarked boundary edge %s\n", en)
		}
		for _, en := range stray {
			fmt.Fprintf(w, "marker edge %s is not on the boundary\n", en)
		}
	}
	for _, d := range topo.Orientation.Degenerate {
		fmt.Fprintf(w, "degenerate element %d nodes %v\n", d.Element, m.Element(d.Element))
	}
	if trace {
		res := dual.TraceAll(topo, parallelDegree)
		fmt.Fprintf(w, "Dual cells: %d (%d on the boundary), %d failed\n",
			len(res.Cells), res.BoundaryCount(), len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(w, "fid %d: %v\n", f.FeatureID, f.Err)
		}
	}
	return
}

func init() {
	rootCmd.AddCommand(StatsCmd)
	StatsCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in Triwaco (.teo), SU2 (.su2) or Gambit (.neu) format")
	StatsCmd.Flags().IntP("parallelDegree", "p", 0, "number of goroutines")
	StatsCmd.Flags().Bool("trace", false, "also trace the dual cells and report failures")
	_ = StatsCmd.MarkFlagRequired("gridFile")
}
