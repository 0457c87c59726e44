package ohh

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type envelope struct {
	OHH *Hand `json:"ohh"`
}

// Encode writes the hand wrapped in an {"ohh": ...} object followed by a blank line.
// When indent is false the object occupies a single line, which is what importers expect.
func Encode(w io.Writer, hand *Hand, indent bool) error {
	if hand == nil {
		return errors.New("ohh: hand is nil")
	}

	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(envelope{OHH: hand}, "", "    ")
	} else {
		data, err = json.Marshal(envelope{OHH: hand})
	}
	if err != nil {
		return fmt.Errorf("ohh: marshal hand %s: %w", hand.GameNumber, err)
	}

	data = append(data, '\n', '\n')
	_, err = w.Write(data)
	return err
}

// Decode reads every wrapped hand from r until EOF.
func Decode(r io.Reader) ([]Hand, error) {
	dec := json.NewDecoder(r)
	var hands []Hand
	for {
		var env envelope
		err := dec.Decode(&env)
		if errors.Is(err, io.EOF) {
			return hands, nil
		}
		if err != nil {
			return hands, fmt.Errorf("ohh: decode record %d: %w", len(hands)+1, err)
		}
		if env.OHH == nil {
			return hands, fmt.Errorf("ohh: record %d has no ohh object", len(hands)+1)
		}
		hands = append(hands, *env.OHH)
	}
}
