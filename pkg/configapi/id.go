package configapi

import "github.com/oklog/ulid/v2"

// IDGenerator provides request ids.
type IDGenerator interface {
	NewID() string
}

// ULIDGenerator generates monotonic-per-millisecond ULIDs.
type ULIDGenerator struct{}

func (ULIDGenerator) NewID() string {
	return ulid.Make().String()
}
