// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"fmt"
	"io"
	"sort"
	"strings"

	hw "github.com/jtolds/monkit-hw"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
	"gopkg.in/spacemonkeygo/monkit.v2/environment"
)

// InitMetrics registers process and hardware statistics on r.
func InitMetrics(r *monkit.Registry) {
	environment.Register(r)
	hw.Register(r)
}

// WriteMetrics writes every statistic in r to w in the prometheus text
// exposition format, sorted by name.
func WriteMetrics(w io.Writer, r *monkit.Registry) error {
	type stat struct {
		name  string
		value float64
	}

	var stats []stat
	r.Stats(func(name string, value float64) {
		stats = append(stats, stat{name: sanitize(name), value: value})
	})
	sort.SliceStable(stats, func(i, k int) bool { return stats[i].name < stats[k].name })

	for _, s := range stats {
		if _, err := fmt.Fprintf(w, "# TYPE %s gauge\n%s %g\n", s.name, s.name, s.value); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

// sanitize maps val onto [a-zA-Z_:][a-zA-Z0-9_:]*, the prometheus metric
// name alphabet.
func sanitize(val string) string {
	if val == "" {
		return "_"
	}
	if '0' <= val[0] && val[0] <= '9' {
		val = "_" + val
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z':
			return r
		case 'A' <= r && r <= 'Z':
			return r
		case '0' <= r && r <= '9':
			return r
		default:
			return '_'
		}
	}, val)
}
