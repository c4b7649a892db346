package readfiles

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/notargets/tesnet/mesh"
	"github.com/notargets/tesnet/utils"
)

// ReadMeshFile picks the reader from the file extension: .teo and .ado (Triwaco grid), .su2 and
// .neu (Gambit neutral). Markers are only present for .su2 files.
func ReadMeshFile(filename string) (m *mesh.Mesh, markers Markers, err error) {
	var (
		log   = utils.Logger()
		start = time.Now()
	)
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to open mesh file %s", filename)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".teo", ".ado":
		m, err = ReadTesnet(file)
	case ".su2":
		m, markers, err = ReadSU2(file)
	case ".neu":
		m, err = ReadGambit2D(file)
	default:
		return nil, nil, errors.Errorf("unsupported mesh file extension %q", ext)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", filename)
	}
	log.Infow("read mesh", "file", filename, "nodes", utils.Count(m.NumNodes()),
		"elements", utils.Count(m.NumElements()), "markers", len(markers), "elapsed", time.Since(start))
	return
}
