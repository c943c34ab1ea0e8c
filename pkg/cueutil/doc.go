// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It consolidates the schema-unify-decode flow used by the checkfile and
// config packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed checkfile_schema.cue
//	var schema string
//
//	result, err := cueutil.Decode[Checkfile](schema, data, "#Checkfile",
//	    cueutil.WithFilename("checkfile.cue"))
//	if err != nil {
//	    return nil, err // error carries the file path and CUE path
//	}
//	return result, nil
package cueutil
