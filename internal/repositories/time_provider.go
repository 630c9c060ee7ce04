// Package repositories holds helpers shared by the storage packages below it
package repositories

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks -source=time_provider.go

// TimeProvider stamps records so tests can pin timestamps
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

// RealTime returns UTC wall clock time truncated to milliseconds, which
// survives a JSON round trip unchanged
func RealTime() TimeProvider {
	return realTime{}
}

func (realTime) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
