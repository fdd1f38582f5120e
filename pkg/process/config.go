// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
	yaml "gopkg.in/yaml.v2"
)

// SaveConfig writes the current value of every flag in flags, except the
// config flag itself and hidden flags, to outfile as YAML. Values in
// overrides replace the flag values.
func SaveConfig(flags *pflag.FlagSet, outfile string, overrides map[string]interface{}) error {
	settings := map[string]interface{}{}
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == ConfigFlag || f.Hidden {
			return
		}
		settings[f.Name] = typedValue(f)
	})
	for key, value := range overrides {
		settings[key] = value
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return Error.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(outfile), 0700); err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(atomicWrite(outfile, 0600, data))
}

// typedValue returns the flag value so that YAML keeps numbers and
// booleans unquoted.
func typedValue(f *pflag.Flag) interface{} {
	value := f.Value.String()
	switch f.Value.Type() {
	case "int", "int64", "int32", "uint", "uint64", "uint32":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "bool":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	case "float64", "float32":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return value
}

// atomicWrite is a helper to atomically write the data to the outfile.
func atomicWrite(outfile string, mode os.FileMode, data []byte) (err error) {
	fh, err := ioutil.TempFile(filepath.Dir(outfile), filepath.Base(outfile))
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, fh.Close())
			err = errs.Combine(err, os.Remove(fh.Name()))
		}
	}()
	if _, err := fh.Write(data); err != nil {
		return errs.Wrap(err)
	}
	if err := fh.Chmod(mode); err != nil {
		return errs.Wrap(err)
	}
	if err := fh.Sync(); err != nil {
		return errs.Wrap(err)
	}
	if err := fh.Close(); err != nil {
		return errs.Wrap(err)
	}
	if err := os.Rename(fh.Name(), outfile); err != nil {
		return errs.Wrap(err)
	}
	return nil
}
