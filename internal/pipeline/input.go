package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"city-stats/internal/domain"
)

// TurnInput is one completed turn handed to the pipeline.
type TurnInput struct {
	Turn  int              `json:"turn"`
	State domain.TurnState `json:"state"`
}

// DecodeTurns reads a JSON array of {turn, state} objects.
// Numbers are kept as json.Number so integer counts survive unchanged.
func DecodeTurns(r io.Reader) ([]TurnInput, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var turns []TurnInput
	if err := dec.Decode(&turns); err != nil {
		return nil, fmt.Errorf("decode turns: %w", err)
	}
	return turns, nil
}

// DecodeTurn reads a single {turn, state} object.
func DecodeTurn(r io.Reader) (TurnInput, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var turn TurnInput
	if err := dec.Decode(&turn); err != nil {
		return TurnInput{}, fmt.Errorf("decode turn: %w", err)
	}
	return turn, nil
}

// LoadTurns reads turn inputs from the file at path.
func LoadTurns(path string) ([]TurnInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	turns, err := DecodeTurns(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return turns, nil
}
