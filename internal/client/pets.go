package client

import (
	"context"
	"fmt"
)

type Pet struct {
	PetID  uint   `json:"pet_id"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// PetClient checks pet existence and ownership against the pet registry.
type PetClient interface {
	GetPet(ctx context.Context, petID uint) (*Pet, error)
}

type petClient struct {
	caller *Caller
}

func NewPetClient(caller *Caller) PetClient {
	return &petClient{caller: caller}
}

func (c *petClient) GetPet(ctx context.Context, petID uint) (*Pet, error) {
	var pet Pet
	if err := c.caller.GetJSON(ctx, fmt.Sprintf("/pets/%d", petID), &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}
