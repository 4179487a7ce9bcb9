package crypto

import "github.com/google/uuid"

// IdentityGenerator hands out identities for new apps.
type IdentityGenerator interface {
	NextIdentity() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NextIdentity() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
