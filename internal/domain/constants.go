package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout constants
const (
	// DefaultProviderTimeout bounds a single model call.
	DefaultProviderTimeout = 60 * time.Second
)

// Limit constants
const (
	// DefaultHistoryDepth caps the undo history; oldest records are evicted.
	DefaultHistoryDepth = 50
	// DigestLimit bounds stored stdout/stderr captures per record.
	DigestLimit = 2048
	// DefaultHistoryDisplayLimit is how many records `wtf history` shows.
	DefaultHistoryDisplayLimit = 20
)
