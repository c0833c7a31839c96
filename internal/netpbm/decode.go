package netpbm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

// Magic numbers of the supported variants.
const (
	MagicPlain = "P1"
	MagicRaw   = "P4"
)

// MaxPixels caps width x height accepted from a header. Larger bitmaps are
// rejected before any pixel storage is allocated.
const MaxPixels = 1 << 28

// Header holds the decoded PBM header.
type Header struct {
	Magic  string `json:"magic"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Sniff reports whether prefix starts with a supported PBM magic number.
func Sniff(prefix []byte) bool {
	return bytes.HasPrefix(prefix, []byte(MagicPlain)) || bytes.HasPrefix(prefix, []byte(MagicRaw))
}

// DecodeConfig reads only the header.
func DecodeConfig(r io.Reader) (Header, error) {
	return readHeader(bufio.NewReader(r))
}

// Decode reads a P1 or P4 image from r.
//
// The pixel count must match width x height exactly. For P1, any symbol
// other than '0', '1', whitespace or a comment is an error, as are extra
// pixels after the last row. For P4, data after the last row is ignored.
func Decode(r io.Reader) (*bitmap.Grid, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	g, err := bitmap.New(h.Width, h.Height)
	if err != nil {
		return nil, malformed("%v", err)
	}

	switch h.Magic {
	case MagicPlain:
		err = decodePlain(br, g)
	case MagicRaw:
		err = decodeRaw(br, g)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DecodeFile opens and decodes the PBM file at path.
func DecodeFile(path string) (*bitmap.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return g, nil
}

func readHeader(br *bufio.Reader) (Header, error) {
	magic, err := readToken(br)
	if err != nil {
		return Header{}, truncated("magic number", err)
	}
	if magic != MagicPlain && magic != MagicRaw {
		return Header{}, malformed("unsupported magic number %q (want P1 or P4)", magic)
	}

	width, err := readDimension(br, "width")
	if err != nil {
		return Header{}, err
	}
	height, err := readDimension(br, "height")
	if err != nil {
		return Header{}, err
	}
	if width > MaxPixels/height {
		return Header{}, malformed("%dx%d exceeds the %d pixel limit", width, height, MaxPixels)
	}

	return Header{Magic: magic, Width: width, Height: height}, nil
}

func readDimension(br *bufio.Reader, name string) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, truncated(name, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, malformed("invalid %s %q", name, tok)
	}
	if n < 1 {
		return 0, malformed("%s must be positive, got %d", name, n)
	}
	return n, nil
}

// readToken returns the next whitespace-delimited header token, skipping
// comments. The delimiter byte that ends the token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#':
			if err := skipComment(br); err != nil {
				return "", err
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func decodePlain(br *bufio.Reader, g *bitmap.Grid) error {
	w, total := g.Width(), g.Width()*g.Height()
	n := 0
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch {
		case c == '0' || c == '1':
			if n >= total {
				return malformed("pixels read exceed expected %d", total)
			}
			g.Set(n%w, n/w, c-'0')
			n++
		case c == '#':
			if err := skipComment(br); err != nil {
				return err
			}
		case isSpace(c):
		default:
			return malformed("invalid pixel symbol %q", c)
		}
	}
	if n != total {
		return malformed("pixels read: %d != expected: %d", n, total)
	}
	return nil
}

func decodeRaw(br *bufio.Reader, g *bitmap.Grid) error {
	stride := (g.Width() + 7) / 8
	row := make([]byte, stride)
	for y := 0; y < g.Height(); y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return truncated(fmt.Sprintf("row %d", y), err)
		}
		for x := 0; x < g.Width(); x++ {
			g.Set(x, y, (row[x/8]>>(7-uint(x%8)))&1)
		}
	}
	return nil
}

func skipComment(br *bufio.Reader) error {
	_, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// truncated maps EOF to a format error and passes other I/O errors through.
func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return malformed("incomplete file: missing %s", what)
	}
	return err
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
