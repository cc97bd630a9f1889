package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-stats/internal/domain"
)

func sampleState() domain.ReportState {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return domain.ReportState{
		HistoricalData: []domain.TurnSnapshot{
			{Turn: 1, Timestamp: at, Population: 1000, Money: 5000, Income: 300, Expenses: 200, NetIncome: 100},
			{Turn: 2, Timestamp: at.Add(time.Minute), Population: 1100, Money: 5100, Income: 300, Expenses: 250, NetIncome: 50},
		},
		ReportsGenerated: 4,
	}
}

func TestEncodeDecodeState(t *testing.T) {
	blob, err := EncodeState(sampleState())
	require.NoError(t, err)

	got, err := DecodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestEncodeState_EmptyHistory(t *testing.T) {
	blob, err := EncodeState(domain.ReportState{})
	require.NoError(t, err)

	got, err := DecodeState(blob)
	require.NoError(t, err)
	assert.Empty(t, got.HistoricalData)
	assert.Equal(t, 0, got.ReportsGenerated)
}

func TestDecodeState_NotZstd(t *testing.T) {
	_, err := DecodeState([]byte("plain text"))
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestValidateState(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		valid bool
	}{
		{"valid", `{"historical_data":[{"turn":1,"population":10}],"reports_generated":2}`, true},
		{"empty history", `{"historical_data":[],"reports_generated":0}`, true},
		{"missing counter", `{"historical_data":[]}`, false},
		{"negative counter", `{"historical_data":[],"reports_generated":-1}`, false},
		{"history not array", `{"historical_data":{},"reports_generated":0}`, false},
		{"record without turn", `{"historical_data":[{"population":10}],"reports_generated":0}`, false},
		{"fractional population", `{"historical_data":[{"turn":1,"population":1.5}],"reports_generated":0}`, false},
		{"not json", `{`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateState([]byte(tt.json))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrCorruptState)
			}
		})
	}
}
