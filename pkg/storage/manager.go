package storage

import (
	"fmt"
	"sync"

	"github.com/aureajoias/aurea/config"
	"github.com/aureajoias/aurea/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
// The local disk is always available; the S3 disk is booted only when
// S3_BUCKET is configured.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Default returns the disk named by STORAGE_DISK (falling back to local when
// the configured disk failed to boot).
func Default() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()

	if d, ok := disks[defaultDisk]; ok {
		return d
	}
	return disks["local"]
}

// Use returns the named disk ("local" or "s3").
func Use(name string) (Disk, error) {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Register plugs in a custom Disk implementation (used by tests).
func Register(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}
