// Stream I/O adapter for the flow-scale engine
//
// Feeds the engine one line at a time and commits the rewritten stream
// all-or-nothing: nothing is written to the destination until every input
// line processed cleanly, so a failed safety validation leaves no partial
// output behind. In-place rewrites go through a temp file in the same
// directory and an atomic rename, under an advisory lock on the source.
//
// Copyright (C) 2026  flow-scale authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package stream

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/nuxeh/flow-scale/pkg/errors"
	"github.com/nuxeh/flow-scale/pkg/log"
	"github.com/nuxeh/flow-scale/pkg/scale"
)

// Stdio is the path sentinel for stdin/stdout.
const Stdio = "-"

// Copy runs every line of src through the engine and, only after the whole
// stream processed without error, writes the rewritten stream to dst in a
// single write. Line endings (\n, \r\n, or a missing final newline) are
// preserved exactly.
func Copy(dst io.Writer, src io.Reader, eng *scale.Engine) error {
	var buf bytes.Buffer
	r := bufio.NewReader(src)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			out, perr := eng.ProcessLine(line)
			if perr != nil {
				return perr
			}
			buf.WriteString(out)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.ReadError("input", err)
		}
	}
	if _, err := dst.Write(buf.Bytes()); err != nil {
		return errors.WriteError("output", err)
	}
	return nil
}

// Process opens the resolved input and output and runs the engine over them.
// inPath and outPath accept Stdio; inplace makes outPath irrelevant and
// rewrites inPath atomically.
func Process(eng *scale.Engine, inPath, outPath string, inplace bool) error {
	if inplace {
		return processInPlace(eng, inPath)
	}

	in, closeIn, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	if outPath == Stdio || outPath == "" {
		return Copy(os.Stdout, in, eng)
	}

	// Process fully before the destination file is created, so an aborted
	// run does not clobber a pre-existing output file.
	var buf bytes.Buffer
	if err := Copy(&buf, in, eng); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return errors.WriteError(outPath, err)
	}
	return nil
}

// processInPlace rewrites path through a temp file and rename. The source
// stays advisory-locked for the duration, guarding against a second
// post-processing hook racing on the same file.
func processInPlace(eng *scale.Engine, path string) error {
	if path == Stdio || path == "" {
		return errors.ConfigInputError("cannot use --inplace with stdin input")
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.ReadError(path, err)
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return errors.ReadError(path, err)
	}
	defer unlockFile(f)

	info, err := f.Stat()
	if err != nil {
		return errors.ReadError(path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".flow-scale-*")
	if err != nil {
		return errors.WriteError(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := Copy(tmp, f, eng); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.WriteError(tmpName, err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		log.GetLogger("stream").Warn("could not preserve mode on %s: %v", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WriteError(path, err)
	}
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == Stdio || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.ReadError(path, err)
	}
	return f, func() { f.Close() }, nil
}
