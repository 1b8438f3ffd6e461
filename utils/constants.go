// File: utils/constants.go
package utils

import "time"

// ProfileCachePrefix is the prefix used for Redis profile cache keys.
const ProfileCachePrefix = "profile:"

// ProfileCacheTTL is the time-to-live for profile cache entries.
const ProfileCacheTTL = 10 * time.Minute

// StoreTimeout bounds every single store round trip.
const StoreTimeout = 5 * time.Second
