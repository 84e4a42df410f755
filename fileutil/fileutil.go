// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package fileutil writes files so readers never observe a partial file.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirPermission is used for directories created by EnsureDir (rwxr-x---).
const DirPermission = 0o750

// renameAttempts bounds retries of the final rename; on Windows a virus
// scanner or indexer can briefly hold the target open.
const renameAttempts = 5

// AtomicWriteFile writes data to a temp file in path's directory, syncs it,
// and renames it over path. The directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = tmp.Close() }()

	cleanup := func(step string, err error) error {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to %s temp file: %w", step, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup("close", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return cleanup("chmod", err)
	}
	if err := renameWithRetry(tmpPath, path); err != nil {
		return cleanup("rename", err)
	}
	return nil
}

func renameWithRetry(from, to string) error {
	var err error
	for attempt := range renameAttempts {
		if err = os.Rename(from, to); err == nil {
			return nil
		}
		if attempt < renameAttempts-1 {
			time.Sleep(time.Duration(20*(attempt+1)) * time.Millisecond)
		}
	}
	return err
}

// EnsureDir creates path and any missing parents with DirPermission.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
