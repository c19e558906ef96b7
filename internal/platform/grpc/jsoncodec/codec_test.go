package jsoncodec

import (
	"testing"

	"google.golang.org/grpc/encoding"
)

type sample struct {
	GameID string `json:"game_id"`
	Stake  uint64 `json:"stake"`
}

func TestCodecIsRegistered(t *testing.T) {
	if encoding.GetCodec(Name) == nil {
		t.Fatalf("codec %q is not registered", Name)
	}
}

func TestUnmarshalEmptyPayloadLeavesZeroValue(t *testing.T) {
	var got sample
	if err := (Codec{}).Unmarshal(nil, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != (sample{}) {
		t.Fatalf("got = %+v, want zero value", got)
	}
}

func TestMarshalProducesSnakeCaseFields(t *testing.T) {
	data, err := (Codec{}).Marshal(sample{GameID: "g-1", Stake: 1000})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"game_id":"g-1","stake":1000}` {
		t.Fatalf("data = %s", data)
	}
}
