// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package memory

import (
	"strconv"
	"strings"

	"github.com/zeebo/errs"
)

// Error is the default error class for memory sizes.
var Error = errs.Class("memory")

// Size represents a count of bytes.
type Size int64

// base 2 sizes
const (
	B   Size = 1 << (10 * iota)
	KiB
	MiB
	GiB
	TiB
)

type unit struct {
	suffix string
	scale  float64
}

var units = []unit{
	{"T", float64(TiB)},
	{"G", float64(GiB)},
	{"M", float64(MiB)},
	{"K", float64(KiB)},
	{"B", float64(B)},
	{"", 0},
}

// Int returns size as an int.
func (size Size) Int() int { return int(size) }

// Int64 returns size as an int64.
func (size Size) Int64() int64 { return int64(size) }

// String converts size to a string using the largest unit that represents
// it exactly with at most one decimal, so that Set(String()) is lossless.
func (size Size) String() string {
	if size <= 0 {
		return "0"
	}

	v := float64(size)
	for _, unit := range units {
		if unit.scale <= 1 || v < unit.scale {
			continue
		}
		r := strconv.FormatFloat(v/unit.scale, 'f', 1, 64)
		parsed, err := strconv.ParseFloat(r, 64)
		if err != nil || Size(parsed*unit.scale) != size {
			continue
		}
		r = strings.TrimSuffix(r, "0")
		r = strings.TrimSuffix(r, ".")
		return r + unit.suffix + "iB"
	}
	return strconv.FormatInt(int64(size), 10) + "B"
}

// Set updates value from string, accepting "512", "512B", "2K", "2KB" and "2KiB".
func (size *Size) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return Error.New("empty size")
	}

	if strings.HasSuffix(s, "iB") {
		s = strings.TrimSuffix(s, "iB")
	} else if len(s) > 2 && strings.HasSuffix(s, "B") && !isDigit(s[len(s)-2]) {
		s = strings.TrimSuffix(s, "B")
	}
	if s == "" {
		return Error.New("empty size")
	}

	value, suffix := s[:len(s)-1], s[len(s)-1]
	if isDigit(suffix) {
		suffix = 'B'
		value = s
	}

	for _, unit := range units {
		if unit.suffix == string(suffix) {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Error.Wrap(err)
			}
			if v < 0 {
				return Error.New("negative size %q", s)
			}
			*size = Size(v * unit.scale)
			return nil
		}
	}
	return Error.New("unknown suffix %q", string(suffix))
}

// Type implements pflag.Value.
func (Size) Type() string { return "memory.Size" }

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
