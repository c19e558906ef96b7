package event

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"
)

// envelope fixes the field order hashed for every journal entry.
type envelope struct {
	DeploymentID string          `json:"deployment_id"`
	GameID       string          `json:"game_id,omitempty"`
	Type         string          `json:"type"`
	Tick         uint64          `json:"tick"`
	Timestamp    string          `json:"timestamp"`
	ActorID      string          `json:"actor_id"`
	RequestID    string          `json:"request_id,omitempty"`
	InvocationID string          `json:"invocation_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

type chainEnvelope struct {
	Seq       uint64 `json:"seq"`
	EventHash string `json:"event_hash"`
	PrevHash  string `json:"prev_hash"`
}

// EventHash computes the content hash of a single event. Seq is excluded so
// the same content hashes identically regardless of journal position.
func EventHash(evt Event) (string, error) {
	payload := json.RawMessage(evt.PayloadJSON)
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	if !json.Valid(payload) {
		return "", ErrPayloadInvalid
	}
	return hashJSON(envelope{
		DeploymentID: evt.DeploymentID,
		GameID:       evt.GameID,
		Type:         string(evt.Type),
		Tick:         evt.Tick,
		Timestamp:    evt.Timestamp.UTC().Format(time.RFC3339Nano),
		ActorID:      evt.ActorID,
		RequestID:    evt.RequestID,
		InvocationID: evt.InvocationID,
		Payload:      payload,
	})
}

// ChainHash links evt to its predecessor in the deployment journal.
func ChainHash(evt Event, prevHash string) (string, error) {
	if evt.Seq == 0 {
		return "", errors.New("event sequence is required")
	}
	eventHash := evt.Hash
	if eventHash == "" {
		var err error
		eventHash, err = EventHash(evt)
		if err != nil {
			return "", err
		}
	}
	return hashJSON(chainEnvelope{Seq: evt.Seq, EventHash: eventHash, PrevHash: prevHash})
}

// VerifyChain checks that events form an unbroken chain starting after
// prevHash. Events must be ordered by Seq.
func VerifyChain(events []Event, prevHash string) error {
	for _, evt := range events {
		if evt.PrevHash != prevHash {
			return errors.New("event chain is broken")
		}
		hash, err := EventHash(evt)
		if err != nil {
			return err
		}
		if hash != evt.Hash {
			return errors.New("event hash mismatch")
		}
		chain, err := ChainHash(evt, prevHash)
		if err != nil {
			return err
		}
		if chain != evt.ChainHash {
			return errors.New("event chain hash mismatch")
		}
		prevHash = evt.ChainHash
	}
	return nil
}

func hashJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
