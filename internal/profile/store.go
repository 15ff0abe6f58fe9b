package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// StoreKey is the well-known key the single profile record lives under.
const StoreKey = "nutriflow_profile"

var ErrMalformedProfile = errors.New("malformed stored profile")

// Store persists a single profile record, replacing it as a whole on each save.
// Load returns (nil, nil) when nothing is stored.
type Store interface {
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p Profile) error
	Clear(ctx context.Context) error
}

func marshal(p Profile) ([]byte, error) {
	profileBytes, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return profileBytes, nil
}

func unmarshal(profileBytes []byte) (*Profile, error) {
	p := &Profile{}
	if err := json.Unmarshal(profileBytes, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProfile, err)
	}
	if err := checkStored(*p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProfile, err)
	}
	return p, nil
}

// checkStored rejects records that decode but could not have come out of onboarding.
func checkStored(p Profile) error {
	switch {
	case !ValidName(p.Name):
		return fmt.Errorf("invalid name %q", p.Name)
	case !ValidAge(p.Age):
		return fmt.Errorf("invalid age %d", p.Age)
	case !ValidHeight(p.Height):
		return fmt.Errorf("invalid height %v", p.Height)
	case !ValidWeight(p.Weight):
		return fmt.Errorf("invalid weight %v", p.Weight)
	}
	return nil
}
