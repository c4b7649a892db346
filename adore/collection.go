package adore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/notargets/tesnet/utils"
)

const (
	setTag  = "*SET*"
	textTag = "*TEXT*"
)

// Collection holds the blocks of one file in file order, a repeated name replaces the earlier
// block in place
type Collection struct {
	Path   string
	blocks []*Block
	byName map[string]int
}

func NewCollection() *Collection {
	return &Collection{byName: make(map[string]int)}
}

func ReadFile(path string) (c *Collection, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	if c, err = Scan(f); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	c.Path = path
	utils.Logger().Debugw("read adore file", "file", path, "blocks", c.Len())
	return
}

type lineReader struct {
	sc     *bufio.Scanner
	lineNo int
}

func (lr *lineReader) next() (line string, ok bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	lr.lineNo++
	return strings.TrimRight(lr.sc.Text(), "\r"), true
}

func (lr *lineReader) mustNext(what string) (string, error) {
	line, ok := lr.next()
	if !ok {
		if err := lr.sc.Err(); err != nil {
			return "", err
		}
		return "", errors.Errorf("line %d: unexpected end of file, expected %s", lr.lineNo, what)
	}
	return line, nil
}

// Scan parses every block. Lines outside blocks, such as the ENDSET marker and separators, are
// skipped.
func Scan(r io.Reader) (c *Collection, err error) {
	var (
		lr = &lineReader{sc: bufio.NewScanner(r)}
	)
	lr.sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	c = NewCollection()
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		var b *Block
		switch {
		case strings.HasPrefix(line, setTag):
			b = &Block{Name: strings.TrimSpace(line[len(setTag):]), Format: DefaultFormat}
		case strings.HasPrefix(line, textTag):
			b = &Block{Name: strings.TrimSpace(line[len(textTag):]), Format: DefaultFormat}
			b.Format.Type = 'A'
		default:
			continue
		}
		if err = b.parseTime(); err != nil {
			return nil, err
		}
		if err = readBlock(lr, b); err != nil {
			return nil, errors.Wrapf(err, "block %q", b.Name)
		}
		c.Add(b)
	}
	if err = lr.sc.Err(); err != nil {
		return nil, err
	}
	return
}

func readBlock(lr *lineReader, b *Block) (err error) {
	line, err := lr.mustNext("block kind")
	if err != nil {
		return
	}
	kind, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return errors.Errorf("line %d: invalid block kind %q", lr.lineNo, line)
	}
	switch kind {
	case 1:
		b.Constant = true
		if line, err = lr.mustNext("constant value"); err != nil {
			return
		}
		return b.parseValue(line)
	case 2:
	default:
		return errors.Errorf("line %d: unknown block kind %d", lr.lineNo, kind)
	}
	if line, err = lr.mustNext("count and format"); err != nil {
		return
	}
	if len(line) < 10 {
		return errors.Errorf("line %d: short header %q", lr.lineNo, line)
	}
	count, err := strconv.Atoi(strings.TrimSpace(line[:10]))
	if err != nil || count < 0 {
		return errors.Errorf("line %d: invalid count %q", lr.lineNo, line[:10])
	}
	if b.Format, err = ParseFormat(line[10:]); err != nil {
		return errors.Wrapf(err, "line %d", lr.lineNo)
	}
	if b.IsText() {
		b.Text = make([]string, 0, count)
	} else {
		b.Numbers = make([]float64, 0, count)
	}
	w := b.Format.Width
	for b.Count() < count {
		if line, err = lr.mustNext(fmt.Sprintf("%d more values", count-b.Count())); err != nil {
			return
		}
		for j := 0; j < b.Format.Rep && b.Count() < count; j++ {
			k := j * w
			if k >= len(line) {
				break
			}
			if err = b.parseValue(line[k:min(k+w, len(line))]); err != nil {
				return errors.Wrapf(err, "line %d", lr.lineNo)
			}
		}
	}
	return
}

// Add appends a block, or replaces the block with the same name
func (c *Collection) Add(b *Block) {
	if i, ok := c.byName[b.Name]; ok {
		c.blocks[i] = b
		return
	}
	c.byName[b.Name] = len(c.blocks)
	c.blocks = append(c.blocks, b)
}

func (c *Collection) Len() int { return len(c.blocks) }

// Blocks returns the blocks in file order
func (c *Collection) Blocks() []*Block { return c.blocks }

func (c *Collection) Get(name string) (b *Block, ok bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.blocks[i], true
}

// FindFirst returns the first block whose name starts with name, ignoring case
func (c *Collection) FindFirst(name string) (b *Block, ok bool) {
	caps := strings.ToUpper(name)
	for _, b = range c.blocks {
		if strings.HasPrefix(strings.ToUpper(b.Name), caps) {
			return b, true
		}
	}
	return nil, false
}

// Require is FindFirst with an error for a missing block
func (c *Collection) Require(name string) (*Block, error) {
	b, ok := c.FindFirst(name)
	if !ok {
		return nil, errors.Errorf("no block named %s in %s", name, c.Path)
	}
	return b, nil
}

func (c *Collection) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, b := range c.blocks {
		if err := b.Write(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write emits the block in the layout Scan reads. Empty blocks are skipped.
func (b *Block) Write(w io.Writer) (err error) {
	if b.Count() == 0 {
		return nil
	}
	var (
		bw  = bufio.NewWriter(w)
		tag = setTag
		end = "ENDSET"
	)
	if b.IsText() {
		tag, end = textTag, "ENDTEXT"
	}
	fmt.Fprintf(bw, "%s%s\n", tag, b.Name)
	if b.Constant {
		bw.WriteString("1\n")
		switch {
		case b.IsText():
			fmt.Fprintf(bw, "%s\n", b.Text[0])
		case b.Format.Type == 'I':
			fmt.Fprintf(bw, "%d\n", int(b.Numbers[0]))
		default:
			fmt.Fprintf(bw, "%#g\n", b.Numbers[0])
		}
		return errors.Wrapf(bw.Flush(), "writing block %q", b.Name)
	}
	var (
		count = b.Count()
		verb  = b.Format.verb()
	)
	bw.WriteString("2\n")
	fmt.Fprintf(bw, "%5d     (%s)\n", count, b.Format)
	for i := 0; i < count; i++ {
		switch {
		case b.IsText():
			fmt.Fprintf(bw, verb, b.Text[i])
		case b.Format.Type == 'I':
			fmt.Fprintf(bw, verb, int(b.Numbers[i]))
		default:
			fmt.Fprintf(bw, verb, b.Numbers[i])
		}
		if i+1 < count && (i+1)%b.Format.Rep == 0 {
			bw.WriteByte('\n')
		}
	}
	fmt.Fprintf(bw, "\n%s\n%s\n", end, strings.Repeat("-", 72))
	return errors.Wrapf(bw.Flush(), "writing block %q", b.Name)
}
