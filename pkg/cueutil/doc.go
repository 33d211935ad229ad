// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user documents against embedded CUE schemas.
//
// Every caller follows the same three steps: compile the schema, compile
// the user document (CUE or JSON, which CUE reads natively) and unify it
// with a schema definition, then validate and decode.
//
//	//go:embed manifest_schema.cue
//	var manifestSchema []byte
//
//	res, err := cueutil.ParseAndDecode[collection.Manifest](
//	    manifestSchema, data, "#Manifest",
//	    cueutil.WithFilename("package.json"),
//	)
package cueutil
