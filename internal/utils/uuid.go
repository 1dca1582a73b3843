package utils

import "github.com/google/uuid"

// UUIDGenerator hands out user IDs. IDs are UUIDv7 and sort by creation time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}

	// clock or entropy failure
	return uuid.NewString()
}
