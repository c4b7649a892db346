package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type lineReader struct {
	reader *bufio.Reader
	lineNo int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

func (lr *lineReader) getLine() (line string, err error) {
	line, err = lr.reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			err = errors.Errorf("early end of file after line %d", lr.lineNo)
		}
		return
	}
	lr.lineNo++
	line = strings.TrimRight(line, "\r\n") // Strip away the newline
	return
}

func (lr *lineReader) skipLines(n int) (err error) {
	for i := 0; i < n; i++ {
		if _, err = lr.getLine(); err != nil {
			return
		}
	}
	return
}

// getLineNoComments skips lines that start with %
func (lr *lineReader) getLineNoComments() (line string, err error) {
	for {
		if line, err = lr.getLine(); err != nil {
			return
		}
		line = strings.Trim(line, " ")
		if !strings.HasPrefix(line, "%") {
			return
		}
	}
}

// getToken returns the text after the = of a KEY= line
func (lr *lineReader) getToken(key string) (token string, err error) {
	line, err := lr.getLineNoComments()
	if err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		return "", lr.errorf("badly formed input line [%s], should have an =", line)
	}
	if key != "" && !strings.EqualFold(strings.TrimSpace(line[:ind]), key) {
		return "", lr.errorf("expected %s=, have [%s]", key, line)
	}
	token = strings.TrimSpace(line[ind+1:])
	return
}

func (lr *lineReader) readLabel(key string) (label string, err error) {
	token, err := lr.getToken(key)
	if err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		return "", lr.errorf("unable to read label from token: [%s]", token)
	}
	return
}

func (lr *lineReader) readNumber(key string) (num int, err error) {
	token, err := lr.getToken(key)
	if err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		return 0, lr.errorf("unable to read number from token: [%s]", token)
	}
	return
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return errors.Errorf("line %d: %s", lr.lineNo, fmt.Sprintf(format, args...))
}
