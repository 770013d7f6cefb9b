// Advisory file locking stubs for platforms without flock
//
// This file may be distributed under the terms of the GNU GPLv3 license.

//go:build !unix

package stream

import "os"

func lockFile(f *os.File) error { return nil }

func unlockFile(f *os.File) error { return nil }
