package utils

import "github.com/google/uuid"

// UUIDGenerator issues trace IDs. IDs are UUID v7 so they sort by creation
// time in logs.
type UUIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{newV7: uuid.NewV7}
}

// Generate returns a new trace ID. When the v7 generator fails (it reads the
// clock and crypto/rand) a random v4 ID is returned instead.
func (g *UUIDGenerator) Generate() string {
	id, err := g.newV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
