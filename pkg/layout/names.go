// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package layout

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	recordPrefix = "rec_"
	recordSuffix = ".bin"

	// RecordNameWidth is the minimum number of digits in a record file name.
	// Ids that need more digits widen the name instead of wrapping, so names
	// sort in id order only for ids below 1000000: rec_1000000.bin sorts
	// before rec_999999.bin.
	RecordNameWidth = 6
)

// RecordName returns the file name of the record with the given id.
// id must not be negative.
func RecordName(id int) string {
	return fmt.Sprintf("%s%0*d%s", recordPrefix, RecordNameWidth, id, recordSuffix)
}

// ParseRecordName returns the id encoded in a record file name. Only names
// produced by RecordName are accepted.
func ParseRecordName(name string) (int, error) {
	if !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, recordSuffix) {
		return 0, Error.New("not a record file name %q", name)
	}

	digits := name[len(recordPrefix) : len(name)-len(recordSuffix)]
	if len(digits) < RecordNameWidth {
		return 0, Error.New("record file name %q shorter than %d digits", name, RecordNameWidth)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, Error.New("record file name %q contains non-digit %q", name, r)
		}
	}

	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, Error.Wrap(err)
	}
	if RecordName(id) != name {
		return 0, Error.New("record file name %q is not canonical", name)
	}
	return id, nil
}
