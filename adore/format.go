// Package adore reads and writes ADORE record files, the fixed-width block format used by the
// Triwaco groundwater model for grids (tesnet) and results (flo).
package adore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Format is a Fortran style edit descriptor such as 13E6.4 or 10I8: Rep values of Width
// characters per line
type Format struct {
	Rep   int
	Type  byte // I, E, F or A
	Width int
	Prec  int // -1 when absent
}

var (
	formatRE      = regexp.MustCompile(`^(\d+)([A-Z])(\d+)(?:\.(\d+))?$`)
	DefaultFormat = Format{Rep: 13, Type: 'E', Width: 6, Prec: 4}
)

func ParseFormat(s string) (f Format, err error) {
	m := formatRE.FindStringSubmatch(strings.ToUpper(strings.Trim(s, "() \t")))
	if m == nil {
		return f, errors.Errorf("invalid format %q", s)
	}
	f.Rep, _ = strconv.Atoi(m[1])
	f.Type = m[2][0]
	f.Width, _ = strconv.Atoi(m[3])
	f.Prec = -1
	if m[4] != "" {
		f.Prec, _ = strconv.Atoi(m[4])
	}
	switch {
	case f.Rep < 1 || f.Width < 1:
		return f, errors.Errorf("invalid format %q: repeat and width must be positive", s)
	case !strings.ContainsRune("IEFA", rune(f.Type)):
		return f, errors.Errorf("invalid format %q: unknown type %c", s, f.Type)
	}
	return
}

func (f Format) String() string {
	if f.Prec < 0 {
		return fmt.Sprintf("%d%c%d", f.Rep, f.Type, f.Width)
	}
	return fmt.Sprintf("%d%c%d.%d", f.Rep, f.Type, f.Width, f.Prec)
}

func (f Format) IsText() bool { return f.Type == 'A' }

// verb returns the printf directive for one value
func (f Format) verb() string {
	switch f.Type {
	case 'I':
		return fmt.Sprintf("%%%dd", f.Width)
	case 'A':
		return fmt.Sprintf("%%%ds", f.Width)
	}
	prec := f.Prec
	if prec < 0 {
		prec = 0
	}
	return fmt.Sprintf("%%%d.%d%c", f.Width, prec, f.Type+'a'-'A')
}
