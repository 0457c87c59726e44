package phh

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// WriteSession writes hands as a PHHS session: each hand under a numbered
// table header starting at [1], separated by blank lines.
func WriteSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: encode hand %s: %w", hand.HandID, err)
		}
	}
	return nil
}

// DecodeSession reads a PHHS session back into hands ordered by section number.
func DecodeSession(r io.Reader) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: decode session: %w", err)
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ai, errA := strconv.Atoi(keys[i])
		bi, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return ai < bi
		}
		return keys[i] < keys[j]
	})

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hands = append(hands, sections[k])
	}
	return hands, nil
}
