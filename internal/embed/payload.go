// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"errors"
	"io/fs"
	"os"
)

// payloadPattern names the temporary Rez source file.
const payloadPattern = "dmglicense-*.r"

// payloadFile is the scoped temporary Rez source. The caller must defer
// discard as soon as createPayload returns.
type payloadFile struct {
	path string
	f    *os.File
}

// createPayload creates an empty temporary file in dir. Empty dir means the
// current working directory.
func createPayload(dir string) (*payloadFile, error) {
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, payloadPattern)
	if err != nil {
		return nil, &PayloadWriteError{Path: dir, Op: "create", Err: err}
	}
	return &payloadFile{path: f.Name(), f: f}, nil
}

// write stores data and closes the file so Rez can read it.
func (p *payloadFile) write(data []byte) error {
	_, err := p.f.Write(data)
	closeErr := p.f.Close()
	p.f = nil
	if err != nil {
		return &PayloadWriteError{Path: p.path, Op: "write", Err: err}
	}
	if closeErr != nil {
		return &PayloadWriteError{Path: p.path, Op: "close", Err: closeErr}
	}
	return nil
}

// discard closes the file if still open and removes it. It is safe to call
// more than once.
func (p *payloadFile) discard() error {
	if p.f != nil {
		_ = p.f.Close()
		p.f = nil
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
