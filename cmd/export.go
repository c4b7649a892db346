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
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/tesnet/InputParameters"
	"github.com/notargets/tesnet/export"
	"github.com/notargets/tesnet/readfiles"
	"github.com/notargets/tesnet/utils"
)

const exampleFile = `
########################################
Title: "Test Case"
GridFile: grid.teo
OutputDir: out
ParallelDegree: 8
DegenerateTolerance: 0 # sliver height as a fraction of the longest side, 0 flags zero area elements only
WriteNodes: true
WriteElements: true
WriteVoronoi: true
WriteReport: true
########################################
`

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write elements and dual cells of a mesh as GeoJSON",
	Long: `Write elements.json and voronoi.json feature collections, nodes.dat and elements.dat
dumps and a report.yaml run summary. Parameters come from, in increasing priority,
built in defaults, the config file or TESNET_ environment variables, the input
parameters file (-I) and the command line flags.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ep, err := processInput(cmd)
		if err != nil {
			return
		}
		if viper.GetBool("verbose") {
			ep.Print(os.Stdout)
		}
		prof, _ := cmd.Flags().GetString("profile")
		switch strings.ToLower(prof) {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(ep.OutputDir)).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(ep.OutputDir)).Stop()
		default:
			return errors.Errorf("unknown profile %q, use cpu or mem", prof)
		}
		return RunExport(ep)
	},
}

func processInput(cmd *cobra.Command) (ep *InputParameters.ExportParameters, err error) {
	var (
		flags = cmd.Flags()
	)
	ep = InputParameters.NewExportParameters()
	if viper.IsSet("parallelDegree") {
		ep.ParallelDegree = viper.GetInt("parallelDegree")
	}
	if viper.IsSet("degenerateTolerance") {
		ep.DegenerateTolerance = viper.GetFloat64("degenerateTolerance")
	}
	if viper.IsSet("outputDir") {
		ep.OutputDir = viper.GetString("outputDir")
	}
	if ipFile, _ := flags.GetString("inputParametersFile"); len(ipFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(ipFile); err != nil {
			return nil, errors.Wrapf(err, "reading input parameters")
		}
		if err = ep.Parse(data); err != nil {
			return nil, errors.Wrapf(err, "input parameters file %s", ipFile)
		}
	}
	if flags.Changed("gridFile") {
		ep.GridFile, _ = flags.GetString("gridFile")
	}
	if flags.Changed("outputDir") {
		ep.OutputDir, _ = flags.GetString("outputDir")
	}
	if flags.Changed("parallelDegree") {
		ep.ParallelDegree, _ = flags.GetInt("parallelDegree")
	}
	if flags.Changed("tolerance") {
		ep.DegenerateTolerance, _ = flags.GetFloat64("tolerance")
	}
	if flags.Changed("skip") {
		skip, _ := flags.GetStringSlice("skip")
		for _, s := range skip {
			switch strings.ToLower(s) {
			case "nodes":
				ep.WriteNodes = false
			case "elements":
				ep.WriteElements = false
			case "voronoi":
				ep.WriteVoronoi = false
			case "report":
				ep.WriteReport = false
			default:
				return nil, errors.Errorf("unknown output %q, use nodes, elements, voronoi or report", s)
			}
		}
	}
	if len(ep.GridFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, errors.New("must supply a grid file (-F, --gridFile) or an input parameters file with GridFile")
	}
	return ep, ep.Validate()
}

func RunExport(ep *InputParameters.ExportParameters) (err error) {
	m, _, err := readfiles.ReadMeshFile(ep.GridFile)
	if err != nil {
		return
	}
	rpt, err := export.Run(m, ep)
	if err != nil {
		return
	}
	utils.Logger().Infow("export complete", "outputs", rpt.Outputs, "cells", utils.Count(rpt.Cells),
		"failures", len(rpt.Failures))
	return
}

func init() {
	rootCmd.AddCommand(ExportCmd)
	addExportFlags(ExportCmd)
}

func addExportFlags(c *cobra.Command) {
	c.Flags().StringP("gridFile", "F", "", "Grid file to read in Triwaco (.teo), SU2 (.su2) or Gambit (.neu) format")
	c.Flags().StringP("inputParametersFile", "I", "", "YAML file for export parameters like:\n\t- GridFile\n\t- OutputDir\n\t- ParallelDegree")
	c.Flags().StringP("outputDir", "o", ".", "directory for the output files")
	c.Flags().IntP("parallelDegree", "p", 0, "number of goroutines for normalization and tracing")
	c.Flags().Float64P("tolerance", "t", 0, "flag elements whose height is below this fraction of their longest side as degenerate")
	c.Flags().StringSlice("skip", nil, "outputs to skip: nodes, elements, voronoi, report")
	c.Flags().String("profile", "", "write a cpu or mem profile to the output directory")
}
