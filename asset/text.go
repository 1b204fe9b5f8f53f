package asset

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/pray/types"
)

// Sequential line reader for the text asset formats. Errors are annotated
// with the resource path and the current line number.
type lineReader struct {
	res     *Resource
	scanner *bufio.Scanner
	lineNum int
}

func newLineReader(res *Resource) *lineReader {
	return &lineReader{
		res:     res,
		scanner: bufio.NewScanner(res),
	}
}

// Annotate err with the current location.
func (r *lineReader) wrap(err error) error {
	return fmt.Errorf("[%s: %d] %w", r.res.Path(), r.lineNum, err)
}

func (r *lineReader) errorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("[%s: %d] %w: %s", r.res.Path(), r.lineNum, sentinel, fmt.Sprintf(format, args...))
}

// Read the next raw line.
func (r *lineReader) next() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", r.wrap(err)
		}
		r.lineNum++
		return "", r.wrap(ErrUnexpectedEOF)
	}
	r.lineNum++
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

// Read a "key value" header line and return the value. Lines without a
// separator are returned as is.
func (r *lineReader) header() (string, error) {
	line, err := r.next()
	if err != nil {
		return "", err
	}
	if idx := strings.IndexByte(line, ' '); idx != -1 {
		return line[idx+1:], nil
	}
	return line, nil
}

func (r *lineReader) headerInt() (int, error) {
	val, err := r.header()
	if err != nil {
		return 0, err
	}
	return r.parseInt(val)
}

func (r *lineReader) headerCount() (int, error) {
	val, err := r.headerInt()
	if err == nil && val < 0 {
		return 0, r.errorf(ErrSyntax, "negative count %d", val)
	}
	return val, err
}

func (r *lineReader) headerBool() (bool, error) {
	val, err := r.headerInt()
	return val != 0, err
}

func (r *lineReader) headerFloat() (float32, error) {
	val, err := r.header()
	if err != nil {
		return 0, err
	}
	return r.parseFloat(val)
}

func (r *lineReader) headerVec3() (types.Vec3, error) {
	val, err := r.header()
	if err != nil {
		return types.Vec3{}, err
	}
	return r.parseVec3(val)
}

func (r *lineReader) nextFloat() (float32, error) {
	line, err := r.next()
	if err != nil {
		return 0, err
	}
	return r.parseFloat(line)
}

func (r *lineReader) nextVec3() (types.Vec3, error) {
	line, err := r.next()
	if err != nil {
		return types.Vec3{}, err
	}
	return r.parseVec3(line)
}

func (r *lineReader) nextVec2() (types.Vec2, error) {
	line, err := r.next()
	if err != nil {
		return types.Vec2{}, err
	}
	f, err := r.parseFloats(line, 2)
	if err != nil {
		return types.Vec2{}, err
	}
	return types.XY(f[0], f[1]), nil
}

// Read a comma separated list of 1 or 3 unsigned indices.
func (r *lineReader) nextIndices() ([]uint32, error) {
	line, err := r.next()
	if err != nil {
		return nil, err
	}

	tokens := strings.Split(line, ",")
	if len(tokens) != 1 && len(tokens) != 3 {
		return nil, r.errorf(ErrSyntax, "expected 1 or 3 indices; got %d", len(tokens))
	}
	out := make([]uint32, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			return nil, r.errorf(ErrSyntax, "invalid index %q", tok)
		}
		out[i] = uint32(v)
	}
	return out, nil
}

func (r *lineReader) parseInt(val string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, r.errorf(ErrSyntax, "invalid integer %q", val)
	}
	return v, nil
}

func (r *lineReader) parseFloat(val string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 32)
	if err != nil {
		return 0, r.errorf(ErrSyntax, "invalid number %q", val)
	}
	return float32(v), nil
}

func (r *lineReader) parseFloats(val string, count int) ([]float32, error) {
	tokens := strings.Split(val, ",")
	if len(tokens) != count {
		return nil, r.errorf(ErrSyntax, "expected %d comma separated values; got %q", count, val)
	}
	out := make([]float32, count)
	for i, tok := range tokens {
		v, err := r.parseFloat(tok)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *lineReader) parseVec3(val string) (types.Vec3, error) {
	f, err := r.parseFloats(val, 3)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.XYZ(f[0], f[1], f[2]), nil
}

// Parse a "mesh,texture" reference pair.
func (r *lineReader) nextPair() (int, int, error) {
	line, err := r.next()
	if err != nil {
		return 0, 0, err
	}
	tokens := strings.Split(line, ",")
	if len(tokens) != 2 {
		return 0, 0, r.errorf(ErrSyntax, "expected a mesh,texture pair; got %q", line)
	}
	a, err := r.parseInt(tokens[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := r.parseInt(tokens[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Annotate an error raised while reading a file referenced from the current
// line.
func referencedFrom(err error, r *lineReader) error {
	return fmt.Errorf("%w\nreferenced from %s:%d", err, r.res.Path(), r.lineNum)
}
