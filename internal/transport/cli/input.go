package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	shoperrors "github.com/abgdnv/shopcart/internal/errors"
)

// maxLineLength is the longest input line the menu accepts. Longer lines are
// discarded and reported as invalid input.
const maxLineLength = 4096

// line is one input line, or the error that ended the input.
type line struct {
	text    string
	tooLong bool
	err     error
}

// tokenReader splits the input into whitespace-separated tokens.
// Lines are read by a separate goroutine so a blocked read never delays cancellation.
type tokenReader struct {
	src     *bufio.Reader
	lines   <-chan line
	pending []string
}

func newTokenReader(in io.Reader) *tokenReader {
	return &tokenReader{src: bufio.NewReader(in)}
}

// start launches the line reading goroutine. It stops after the input ends or ctx is done.
func (r *tokenReader) start(ctx context.Context) {
	if r.lines != nil {
		return
	}
	lines := make(chan line)
	r.lines = lines
	go func() {
		defer close(lines)
		for {
			l := readLine(r.src, maxLineLength)
			select {
			case <-ctx.Done():
				return
			case lines <- l:
			}
			if l.err != nil {
				return
			}
		}
	}()
}

// readInt returns the next token as an integer.
// Returns io.EOF when the input is exhausted, ctx.Err() when ctx is done and
// ErrInvalidInput when the token is not a number. An invalid token drops the rest of its line.
func (r *tokenReader) readInt(ctx context.Context) (int, error) {
	token, err := r.next(ctx)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		r.pending = nil
		return 0, fmt.Errorf("%w: %q", shoperrors.ErrInvalidInput, token)
	}
	return value, nil
}

// next returns the next token, reading further lines as needed. Blank lines are skipped.
func (r *tokenReader) next(ctx context.Context) (string, error) {
	for len(r.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok := <-r.lines:
			switch {
			case !ok:
				if err := ctx.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			case errors.Is(l.err, io.EOF):
				return "", io.EOF
			case l.err != nil:
				return "", fmt.Errorf("failed to read input: %w", l.err)
			case l.tooLong:
				return "", fmt.Errorf("%w: line longer than %d bytes", shoperrors.ErrInvalidInput, maxLineLength)
			}
			r.pending = strings.Fields(l.text)
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token := r.pending[0]
	r.pending = r.pending[1:]
	return token, nil
}

// readLine reads up to the next newline. Content beyond limit is consumed and dropped,
// and the line is marked as too long. A final line without a newline is returned as is.
func readLine(src *bufio.Reader, limit int) line {
	var buf []byte
	tooLong := false
	for {
		chunk, err := src.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		switch {
		case err == nil:
			return line{text: string(buf), tooLong: tooLong}
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong):
			return line{text: string(buf), tooLong: tooLong}
		default:
			return line{err: err}
		}
	}
}
