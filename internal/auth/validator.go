package auth

import (
	"context"
	"errors"
)

// Outcome classifies a bearer credential.
type Outcome int

const (
	OutcomeValid Outcome = iota
	OutcomeMissing
	OutcomeInvalid
	OutcomeExpired
	OutcomeDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeMissing:
		return "missing"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeExpired:
		return "expired"
	case OutcomeDenied:
		return "denied"
	}
	return "unknown"
}

// Decision is the result of validating an access token. Subject and Role are
// set only for OutcomeValid.
type Decision struct {
	Outcome Outcome
	Subject string
	Role    string
}

// DenyList is the read side of the access-token denylist.
type DenyList interface {
	Exists(ctx context.Context, token string) (bool, error)
}

// Validator decides whether a candidate access token grants access.
type Validator struct {
	codec *Codec
	deny  DenyList
}

func NewValidator(codec *Codec, deny DenyList) *Validator {
	return &Validator{codec: codec, deny: deny}
}

// Validate runs the decision chain: missing, then signature/structure, then
// expiry, then the denylist. The order is deliberate: the signature check
// comes before any store lookup so forged tokens cannot probe the denylist,
// and the denylist is consulted last so cheap negatives short-circuit.
// A non-nil error means the denylist lookup failed, not that the token was
// rejected.
func (v *Validator) Validate(ctx context.Context, token string) (Decision, error) {
	if token == "" {
		return Decision{Outcome: OutcomeMissing}, nil
	}
	claims, err := v.codec.Decode(token)
	if errors.Is(err, ErrExpired) {
		return Decision{Outcome: OutcomeExpired}, nil
	}
	if err != nil {
		return Decision{Outcome: OutcomeInvalid}, nil
	}
	denied, err := v.deny.Exists(ctx, token)
	if err != nil {
		return Decision{}, err
	}
	if denied {
		return Decision{Outcome: OutcomeDenied}, nil
	}
	return Decision{Outcome: OutcomeValid, Subject: claims.Subject, Role: claims.Role}, nil
}
