// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and
// turns CUE errors into messages that name the offending field.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeMap(schema, data, "#Config", "config.cue")
//	if err != nil {
//	    return err // e.g. config.cue: compression: conflicting values "bz2" and "xz"
//	}
package cueutil
