// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name:     string & =~"^[a-z]+$"
	size?:    int & >0
	tags?: [...string]
}
`

type doc struct {
	Name string   `json:"name"`
	Size int      `json:"size"`
	Tags []string `json:"tags"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[doc]([]byte(testSchema), []byte(`{"name": "icek", "size": 3, "tags": ["a"]}`), "#Doc")
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if res.Value.Name != "icek" || res.Value.Size != 3 || len(res.Value.Tags) != 1 {
		t.Errorf("decoded = %+v", res.Value)
	}
}

func TestParseAndDecode_ReportsPaths(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[doc]([]byte(testSchema), []byte(`{"name": "Bad Name", "size": -1}`), "#Doc", WithFilename("doc.json"))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if verr.FilePath != "doc.json" {
		t.Errorf("FilePath = %q", verr.FilePath)
	}
	joined := strings.Join(verr.Problems, "\n")
	if !strings.Contains(joined, "name") || !strings.Contains(joined, "size") {
		t.Errorf("problems should mention both fields:\n%s", joined)
	}
}

func TestParseAndDecode_MissingRequiredField(t *testing.T) {
	t.Parallel()

	if _, err := ParseAndDecode[doc]([]byte(testSchema), []byte(`{}`), "#Doc"); err == nil {
		t.Fatal("missing required field should fail concrete validation")
	}
}

func TestDecodeMap_NonConcrete(t *testing.T) {
	t.Parallel()

	m, err := DecodeMap([]byte(`#Cfg: {dir?: string, n?: int}`), []byte(`dir: "/tmp"`), "#Cfg", WithConcrete(false))
	if err != nil {
		t.Fatalf("DecodeMap() error: %v", err)
	}
	if m["dir"] != "/tmp" {
		t.Errorf("dir = %v", m["dir"])
	}
}

func TestParseAndDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[doc]([]byte(testSchema), []byte(`{"name": `), "#Doc", WithFilename("broken.json"))
	if err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Fatalf("error = %v, want one naming broken.json", err)
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "a"); err != nil {
		t.Errorf("at limit: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "a"); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("over limit error = %v, want ErrFileTooLarge", err)
	}

	_, err := ParseAndDecode[doc]([]byte(testSchema), []byte(`{"name":"abc"}`), "#Doc", WithMaxFileSize(4))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("ParseAndDecode with tiny limit error = %v, want ErrFileTooLarge", err)
	}
}

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x") != nil {
		t.Error("FormatError(nil) should be nil")
	}
	base := errors.New("plain")
	err := FormatError(base, "x.cue")
	if !errors.Is(err, base) || !strings.HasPrefix(err.Error(), "x.cue") {
		t.Errorf("FormatError(plain) = %v", err)
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Errorf("plain error reported as validation problems: %v", verr.Problems)
	}
	if wrapped := FormatError(fmt.Errorf("reading: %w", base), "x.cue"); !errors.Is(wrapped, base) {
		t.Errorf("FormatError(wrapped) lost the chain: %v", wrapped)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"name"}, "name"},
		{[]string{"remote", "timeout"}, "remote.timeout"},
		{[]string{"authors", "0", "name"}, "authors[0].name"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
