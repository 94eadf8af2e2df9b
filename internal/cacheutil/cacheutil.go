// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iwazzer/dbba/internal/log"
)

// Entry is a cached object on disk. Key is the clear-text key and Path the
// file holding Data.
type Entry struct {
	Key  string
	Path string
	Data []byte
}

// Dir resolves the base cache directory: DBBA_CACHE_DIR when set, otherwise
// os.UserCacheDir()/dbba. It returns false when neither resolves.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("DBBA_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "dbba"), true
	}
	return "", false
}

// Enabled is true unless DBBA_CACHE is "0" or "false".
func Enabled() bool {
	v := os.Getenv("DBBA_CACHE")
	return v != "0" && v != "false"
}

// EntryPath returns where key would be stored beneath namespace and whether
// a file is there now.
func EntryPath(namespace []string, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(append(append([]string{base}, namespace...), hashKey(key))...)
	_, err := os.Stat(p)
	return p, err == nil
}

// Read returns the entry for key if caching is enabled and it exists.
func Read(namespace []string, key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(namespace, key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		log.Debugf("cache read failed: key=%s err=%v", key, err)
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return &Entry{Key: key, Path: p, Data: b}, true
}

// Write stores data for key beneath namespace. It is a no-op when caching is
// disabled or no directory resolves.
func Write(namespace []string, key string, data []byte) error {
	if !Enabled() {
		return nil
	}
	p, _ := EntryPath(namespace, key)
	if p == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write then rename so a concurrent reader never sees a partial file.
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s bytes=%d", key, len(data))
	return nil
}

// Purge removes cached files older than hours. hours <= 0 disables purging.
func Purge(hours int) error {
	if hours <= 0 {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			} else {
				log.Debugf("removed cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
