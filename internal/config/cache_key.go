package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key for a user's portal session.
// Role is part of the key because officer and coordinator/student ID
// namespaces overlap.
func (r *CacheKeyStruct) SessionKey(role string, userID int) string {
	return fmt.Sprintf("session:%s:%d", role, userID)
}

// ProgramAttendanceChannel returns the Redis PubSub channel name for a
// program's live check-in stream.
func (r *CacheKeyStruct) ProgramAttendanceChannel(programID int) string {
	return fmt.Sprintf("program:%d:attendance", programID)
}

var CacheKey = NewCacheKeyStruct()
