package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ParseRevenues reads numbers separated by whitespace or commas. Lines
// starting with '#' are ignored.
func ParseRevenues(r io.Reader) ([]float64, error) {
	var revenues []float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || unicode.IsSpace(c)
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d: %q is not a finite number", ErrInvalidInput, line, f)
			}
			revenues = append(revenues, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading revenues: %w", err)
	}

	return revenues, nil
}

// ReadRevenues parses the file at path, or stdin when path is "-".
func ReadRevenues(path string) ([]float64, error) {
	if path == "-" {
		return ParseRevenues(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ParseRevenues(f)
}
