package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNilPayload = errors.New("event payload is nil")

// DecodePayload returns the payload as T. Events published on the in-process
// bus carry T or *T already; payloads read back from a dead-letter line are
// generic maps and are converted through JSON.
func DecodePayload[T any](input any) (T, error) {
	var result T
	switch v := input.(type) {
	case nil:
		return result, ErrNilPayload
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, ErrNilPayload
		}
		return *v, nil
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("encode %T payload: %w", input, err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decode payload as %T: %w", result, err)
	}
	return result, nil
}
