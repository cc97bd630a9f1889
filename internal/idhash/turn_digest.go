// Package idhash computes deterministic digests of recorded turns.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"city-stats/internal/domain"
)

// ComputeTurnDigest computes a deterministic digest of one snapshot.
// Formula: SHA256(turn|population|money|income|expenses|buildings_count|total_debt)
// Timestamps are excluded so re-recording the same inputs yields the same digest.
// Returns hex-encoded hash (64 characters).
func ComputeTurnDigest(s domain.TurnSnapshot) string {
	hash := sha256.Sum256([]byte(turnKey(s)))
	return hex.EncodeToString(hash[:])
}

// ComputeHistoryDigest computes a digest over snapshots in order.
// Formula: SHA256(key_1\nkey_2\n...). An empty history hashes the empty string.
func ComputeHistoryDigest(snapshots []domain.TurnSnapshot) string {
	h := sha256.New()
	for _, s := range snapshots {
		h.Write([]byte(turnKey(s)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func turnKey(s domain.TurnSnapshot) string {
	return fmt.Sprintf("%d|%d|%g|%g|%g|%d|%g",
		s.Turn,
		s.Population,
		s.Money,
		s.Income,
		s.Expenses,
		s.BuildingsCount,
		s.TotalDebt,
	)
}
