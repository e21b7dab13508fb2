// SPDX-License-Identifier: MPL-2.0

package resource

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// LicenseResourceID is the resource ID shared by the license text, its
	// style table and the localized strings.
	LicenseResourceID = 5000

	// lineBreak is the Rez escape for a newline, emitted after every line.
	lineBreak = `\n`

	blockSeparator = "\n\n"
	entryIndent    = "    "
)

// ErrSourceRead is the sentinel error wrapped by SourceReadError.
var ErrSourceRead = errors.New("cannot read license source")

type (
	// SourceReadError is returned when the license file cannot be opened or
	// read, or when a plain text license is not valid UTF-8.
	SourceReadError struct {
		Path string
		Err  error
	}

	// LicenseResource is the dynamic block holding the license text. Each
	// entry of Lines is one source line, already trimmed, escaped and split
	// into segments no longer than MaxSegmentLength.
	LicenseResource struct {
		Kind  LicenseKind
		Lines [][]string
	}

	// Document is a complete Rez source: the fixed blocks in their required
	// order with the license block between the string tables and the style
	// table.
	Document struct {
		License LicenseResource
	}
)

// NewLicenseResource trims, escapes and chunks raw license lines.
func NewLicenseResource(lines []string, kind LicenseKind) (LicenseResource, error) {
	if valid, errs := kind.IsValid(); !valid {
		return LicenseResource{}, errs[0]
	}
	res := LicenseResource{Kind: kind, Lines: make([][]string, 0, len(lines))}
	for _, line := range lines {
		res.Lines = append(res.Lines, Chunk(Escape(trimLine(line)), MaxSegmentLength))
	}
	return res, nil
}

// Build renders the Rez source for the given raw license lines.
func Build(lines []string, kind LicenseKind) ([]byte, error) {
	res, err := NewLicenseResource(lines, kind)
	if err != nil {
		return nil, err
	}
	return Document{License: res}.Bytes(), nil
}

// BuildFile reads the license at path and renders its Rez source. The kind
// is chosen from the file name; see KindForPath.
func BuildFile(path string) ([]byte, error) {
	kind := KindForPath(path)
	lines, err := ReadLines(path, kind)
	if err != nil {
		return nil, err
	}
	return Build(lines, kind)
}

// ReadLines reads the license file and splits it into lines. "\r\n", "\r"
// and "\n" all end a line, and a terminator at the end of the file does not
// start an extra empty line. Plain text must be valid UTF-8; RTF is passed
// through untouched.
func ReadLines(path string, kind LicenseKind) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceReadError{Path: path, Err: err}
	}
	if kind == KindText && !utf8.Valid(data) {
		return nil, &SourceReadError{Path: path, Err: errors.New("license text is not valid UTF-8")}
	}
	return splitLines(string(data)), nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Bytes renders the document. The output always ends with a newline.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, block := range []string{templateBlock, languageMapBlock, buttonsBlock, localizedBlock} {
		buf.WriteString(block)
		buf.WriteString(blockSeparator)
	}
	d.License.writeTo(&buf)
	buf.WriteString(blockSeparator)
	buf.WriteString(styleBlock)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Segments returns every string entry of the block in output order,
// including the line break marker after each line.
func (r LicenseResource) Segments() []string {
	var out []string
	for _, segs := range r.Lines {
		out = append(out, segs...)
		out = append(out, lineBreak)
	}
	return out
}

func (r LicenseResource) writeTo(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "data '%s' (%d, \"English\") {\n", r.Kind, LicenseResourceID)
	for _, seg := range r.Segments() {
		buf.WriteString(entryIndent)
		buf.WriteByte('"')
		buf.WriteString(seg)
		buf.WriteString("\"\n")
	}
	buf.WriteString("};")
}

// Error implements the error interface for SourceReadError.
func (e *SourceReadError) Error() string {
	return fmt.Sprintf("cannot read license source %q: %v", e.Path, e.Err)
}

// Unwrap returns both ErrSourceRead and the underlying cause, so
// errors.Is works for the sentinel and for fs errors such as fs.ErrNotExist.
func (e *SourceReadError) Unwrap() []error { return []error{ErrSourceRead, e.Err} }
