package commsutil

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodePayload(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    string
		wantErr bool
	}{
		{name: "map", input: map[string]string{"method": "getChampions"}, want: `{"method":"getChampions"}`},
		{name: "raw message", input: json.RawMessage(`{"a":1}`), want: `{"a":1}`},
		{name: "nil", input: nil, want: "null"},
		{name: "channel is not serializable", input: make(chan int), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodePayload(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("commsutil:codec_test - expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("commsutil:codec_test - unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("commsutil:codec_test - EncodePayload() = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestDecodePayload_UsesNumber(t *testing.T) {
	var out map[string]interface{}
	if err := DecodePayload([]byte(`{"id": 1778704162}`), &out); err != nil {
		t.Fatalf("commsutil:codec_test - decode failed: %v", err)
	}
	n, ok := out["id"].(json.Number)
	if !ok {
		t.Fatalf("commsutil:codec_test - id decoded as %T, want json.Number", out["id"])
	}
	if n.String() != "1778704162" {
		t.Errorf("commsutil:codec_test - id = %s", n)
	}
}

func TestDecodePayload_Errors(t *testing.T) {
	var out map[string]string
	if err := DecodePayload(nil, &out); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("commsutil:codec_test - expected ErrEmptyPayload, got %v", err)
	}
	if err := DecodePayload([]byte("  "), &out); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("commsutil:codec_test - expected ErrEmptyPayload for whitespace, got %v", err)
	}
	if err := DecodePayload([]byte(`{invalid}`), &out); err == nil {
		t.Error("commsutil:codec_test - expected error for invalid json")
	}
}

func TestDecodeStrict(t *testing.T) {
	type payload struct {
		Region string `json:"region"`
	}

	var p payload
	if err := DecodeStrict([]byte(`{"region":"euw"}`), &p); err != nil {
		t.Fatalf("commsutil:codec_test - unexpected error: %v", err)
	}
	if p.Region != "euw" {
		t.Errorf("commsutil:codec_test - Region = %q", p.Region)
	}

	if err := DecodeStrict([]byte(`{"region":"euw","bogus":1}`), &p); err == nil {
		t.Error("commsutil:codec_test - expected unknown field error")
	}
	if err := DecodeStrict([]byte(`{"region":"euw"} {}`), &p); err == nil {
		t.Error("commsutil:codec_test - expected trailing data error")
	}
}
