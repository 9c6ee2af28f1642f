//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package io

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func lockFile(fh *os.File, exclusive bool) error {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	err := unix.Flock(int(fh.Fd()), how|unix.LOCK_NB)
	if err == unix.EWOULDBLOCK {
		return errors.Wrap(ErrLocked, fh.Name())
	} else if err != nil {
		return errors.Wrapf(err, "flock %s", fh.Name())
	}
	return nil
}

func unlockFile(fh *os.File) error {
	return unix.Flock(int(fh.Fd()), unix.LOCK_UN)
}
