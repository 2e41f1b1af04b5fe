package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding the active JWT ID for a user.
func (r *CacheKeyStruct) UserSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// RefDataKey returns the cache key for a reference-data collection
// (subjects, grade_levels, exam_types).
func (r *CacheKeyStruct) RefDataKey(collection string) string {
	return fmt.Sprintf("refdata:%s", collection)
}

// UnreadCountKey returns the cache key for a user's unread notification count.
func (r *CacheKeyStruct) UnreadCountKey(userID string) string {
	return fmt.Sprintf("user:%s:unread_count", userID)
}

var CacheKey = NewCacheKeyStruct()
