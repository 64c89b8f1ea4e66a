package service

import "github.com/google/uuid"

// Id prefixes by entity kind.
const (
	prefixSection = "sec"
	prefixStudent = "s"
	prefixModule  = "mod"
	prefixReport  = "rep"
)

// IDGenerator issues process-unique identifiers.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator issues "<prefix>-<uuid v4>" identifiers.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
