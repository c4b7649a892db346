package adore

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/tesnet/utils"
)

// Snapshot is a result file whose name carries its start time, as in flairs_1234.flo
type Snapshot struct {
	Start float64
	Path  string
}

var snapshotTimeRE = regexp.MustCompile(`_(\d+)\.`)

// FindSnapshots walks dir for .flo files with a start time in their name
func FindSnapshots(dir string) (snaps []Snapshot, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".flo") {
			return nil
		}
		m := snapshotTimeRE.FindStringSubmatch(d.Name())
		if m == nil {
			return nil
		}
		start, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return errors.Wrapf(err, "start time of %s", path)
		}
		snaps = append(snaps, Snapshot{Start: start, Path: path})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "searching %s", dir)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Start < snaps[j].Start })
	return
}

// Stitch merges the blocks named setName from all snapshots onto one time axis. The blocks of each
// snapshot are shifted so that its first block lands on the snapshot start time. Where snapshots
// overlap, the one with the earlier start wins. The result is in ascending time.
func Stitch(ctx context.Context, snaps []Snapshot, setName string, parallelDegree int) (blocks []*Block, err error) {
	var (
		log         = utils.Logger()
		collections = make([]*Collection, len(snaps))
	)
	g, ctx := errgroup.WithContext(ctx)
	if parallelDegree > 0 {
		g.SetLimit(parallelDegree)
	}
	for i, snap := range snaps {
		i, snap := i, snap
		g.Go(func() (err error) {
			if err = ctx.Err(); err != nil {
				return
			}
			collections[i], err = ReadFile(snap.Path)
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	order := make([]int, len(snaps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return snaps[order[a]].Start > snaps[order[b]].Start })

	merged := make(map[float64]*Block)
	for _, i := range order {
		series := NewValues(collections[i], setName)
		times := series.Times()
		if len(times) == 0 {
			log.Warnw("snapshot has no matching blocks", "file", snaps[i].Path, "set", setName)
			continue
		}
		t0 := times[0]
		for _, t := range times {
			b := series.byTime[t]
			b.SetTime(snaps[i].Start + (t - t0))
			merged[b.Time] = b
		}
		log.Debugw("stitched snapshot", "file", snaps[i].Path, "start", snaps[i].Start, "blocks", len(times))
	}
	blocks = make([]*Block, 0, len(merged))
	for _, b := range merged {
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(a, b int) bool { return blocks[a].Time < blocks[b].Time })
	return
}
