package persistence

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

func TestSnapshotCodecRoundTrip(t *testing.T) {
	want := newTestSnapshot(t)

	data, err := EncodeSnapshot(want)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decoded snapshot differs\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestSnapshotEncodingIsDeterministic(t *testing.T) {
	s := newTestSnapshot(t)

	first, err := EncodeSnapshot(s)
	if err != nil {
		t.Fatal(err)
	}
	second, err := EncodeSnapshot(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("same snapshot encoded to different bytes")
	}
}

func TestDecodeSnapshotRejectsBadPayloads(t *testing.T) {
	wrongVersion := newTestSnapshot(t)
	wrongVersion.Version = 99
	wrongVersionData, err := encMode.Marshal(wrongVersion)
	if err != nil {
		t.Fatal(err)
	}

	valid, err := EncodeSnapshot(newTestSnapshot(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("not a snapshot")},
		{name: "truncated", data: valid[:len(valid)/2]},
		{name: "wrong version", data: wrongVersionData},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(test.data); !errors.Is(err, cerr.ErrCorruptData) {
				t.Fatalf("expected corrupt data error, got %v", err)
			}
		})
	}
}
