package storage

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"city-stats/internal/domain"
)

// Shared stateless coders; EncodeAll and DecodeAll are safe for concurrent use.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// MarshalState renders state in the persisted JSON layout.
func MarshalState(state domain.ReportState) ([]byte, error) {
	if state.HistoricalData == nil {
		state.HistoricalData = []domain.TurnSnapshot{}
	}
	return json.Marshal(state)
}

// UnmarshalState validates data against the persisted layout and decodes it.
// Failures wrap ErrCorruptState.
func UnmarshalState(data []byte) (domain.ReportState, error) {
	var state domain.ReportState
	if err := ValidateState(data); err != nil {
		return state, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return state, nil
}

// EncodeState returns the zstd-compressed JSON blob of state.
func EncodeState(state domain.ReportState) ([]byte, error) {
	data, err := MarshalState(state)
	if err != nil {
		return nil, fmt.Errorf("marshal report state: %w", err)
	}
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

// DecodeState decompresses, validates and decodes a blob produced by
// EncodeState. Failures wrap ErrCorruptState.
func DecodeState(blob []byte) (domain.ReportState, error) {
	data, err := decoder.DecodeAll(blob, nil)
	if err != nil {
		return domain.ReportState{}, fmt.Errorf("%w: decompress: %v", ErrCorruptState, err)
	}
	return UnmarshalState(data)
}
