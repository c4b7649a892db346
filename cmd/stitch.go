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
	"bufio"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/notargets/tesnet/adore"
	"github.com/notargets/tesnet/utils"
)

// StitchCmd represents the stitch command
var StitchCmd = &cobra.Command{
	Use:   "stitch folder setname dest.flo",
	Short: "Merge the time steps of one set from a folder of .flo files",
	Long: `Collects the .flo files below folder whose names carry a start time, as in
flairs_1234.flo, shifts the blocks named setname in every file to start at that time
and writes them to dest.flo in ascending time. Where files overlap, the file with the
earlier start time wins.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parallelDegree, _ := cmd.Flags().GetInt("parallelDegree")
		return RunStitch(args[0], args[1], args[2], parallelDegree)
	},
}

func RunStitch(folder, setName, dest string, parallelDegree int) (err error) {
	var (
		log = utils.Logger()
	)
	snaps, err := adore.FindSnapshots(folder)
	if err != nil {
		return
	}
	if len(snaps) == 0 {
		return errors.Errorf("no .flo files with a start time in %s", folder)
	}
	blocks, err := adore.Stitch(context.Background(), snaps, setName, parallelDegree)
	if err != nil {
		return
	}
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, b := range blocks {
		log.Debugw("writing block", "name", b.Name)
		if err = b.Write(w); err != nil {
			return
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", dest)
	}
	log.Infow("stitched", "files", len(snaps), "blocks", len(blocks), "dest", dest)
	return f.Close()
}

func init() {
	rootCmd.AddCommand(StitchCmd)
	StitchCmd.Flags().IntP("parallelDegree", "p", 4, "number of files read at once")
}
