/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package huffman

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, cfg Config, data []byte) []byte {
	t.Helper()

	enc, err := NewEncoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	coded, err := enc.EncodeBytes(data)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	dec := NewDecoder(nil)

	decoded, err := dec.DecodeBytes(coded)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}

	if !bytes.Equal(data, decoded) {
		t.Fatalf("round-trip mismatch: got %d bytes, want %d bytes", len(decoded), len(data))
	}

	return coded
}

// Scenario 1: empty input.
func TestScenarioEmptyInput(t *testing.T) {
	cfg := DefaultConfig()
	coded := roundTrip(t, cfg, nil)

	if len(coded) != 5 {
		t.Fatalf("expected a 5-byte header-only stream, got %d bytes", len(coded))
	}

	if coded[0] != 0xD0 {
		t.Fatalf("expected header byte 0xD0 for a zero-remainder empty stream, got %#x", coded[0])
	}

	if coded[1] != versionPlain {
		t.Fatalf("expected version 1, got %d", coded[1])
	}

	if coded[2] != 0x01 || coded[3] != 0x00 {
		t.Fatalf("expected chunk_size_kb 0x0100, got %#x%02x", coded[2], coded[3])
	}

	if coded[4] != DefaultMaxCodeLength {
		t.Fatalf("expected L_max %d, got %d", DefaultMaxCodeLength, coded[4])
	}
}

// Scenario 2: single byte.
func TestScenarioSingleByte(t *testing.T) {
	roundTrip(t, DefaultConfig(), []byte{0x41})
}

// Scenario 3: two distinct symbols, equal counts.
func TestScenarioTwoDistinctSymbolsEqualCounts(t *testing.T) {
	roundTrip(t, DefaultConfig(), []byte{0x41, 0x42, 0x41, 0x42})
}

// Scenario 4: ASCII "hello world".
func TestScenarioHelloWorld(t *testing.T) {
	roundTrip(t, DefaultConfig(), []byte("hello world"))
}

// Scenario 5: all 256 byte values exactly once.
func TestScenarioAllByteValuesOnce(t *testing.T) {
	data := make([]byte, alphabetSize)
	for i := range data {
		data[i] = byte(i)
	}

	roundTrip(t, DefaultConfig(), data)
}

// Scenario 6: highly skewed distribution.
func TestScenarioHighlySkewed(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 999)
	data = append(data, 0x42)

	roundTrip(t, DefaultConfig(), data)
}

// Scenario 7: corrupted magic returns BadMagic.
func TestScenarioBadMagic(t *testing.T) {
	enc, err := NewEncoder(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	coded, err := enc.EncodeBytes([]byte{0x41, 0x42, 0x41})
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	coded[0] ^= 0xFF

	dec := NewDecoder(nil)
	_, err = dec.DecodeBytes(coded)
	if err == nil {
		t.Fatal("expected an error decoding a corrupted magic byte")
	}

	if kind, ok := KindOf(err); !ok || kind != BadMagic {
		t.Fatalf("expected BadMagic, got %v", err)
	}
}

func TestRoundTripRandomPayloads(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg, err := NewConfig(4*1024, DefaultMaxCodeLength)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	for trial := 0; trial < 10; trial++ {
		n := rng.Intn(20000)
		data := make([]byte, n)
		rng.Read(data)
		roundTrip(t, cfg, data)
	}
}

func TestRoundTripMultipleChunks(t *testing.T) {
	cfg, err := NewConfig(1024, DefaultMaxCodeLength)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	rng := rand.New(rand.NewSource(99))
	data := make([]byte, 10*1024+137)
	rng.Read(data)

	roundTrip(t, cfg, data)
}

func TestChecksummedStreamDetectsCorruption(t *testing.T) {
	enc, err := NewEncoder(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	var buf bytes.Buffer
	if err := enc.EncodeStreamChecked(bytes.NewReader([]byte("the quick brown fox")), &buf); err != nil {
		t.Fatalf("EncodeStreamChecked: %v", err)
	}

	coded := buf.Bytes()
	// Flip a bit deep in the payload, after the header, without touching
	// the magic or version bytes.
	coded[len(coded)-2] ^= 0x01

	dec := NewDecoder(nil)
	var out bytes.Buffer
	err = dec.DecodeStreamChecked(bytes.NewReader(coded), &out)
	if err == nil {
		t.Fatal("expected checksum mismatch to be detected")
	}
}

func TestChecksummedStreamRoundTrips(t *testing.T) {
	enc, err := NewEncoder(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	data := []byte("the quick brown fox jumps over the lazy dog")

	var buf bytes.Buffer
	if err := enc.EncodeStreamChecked(bytes.NewReader(data), &buf); err != nil {
		t.Fatalf("EncodeStreamChecked: %v", err)
	}

	dec := NewDecoder(nil)
	var out bytes.Buffer
	if err := dec.DecodeStreamChecked(bytes.NewReader(buf.Bytes()), &out); err != nil {
		t.Fatalf("DecodeStreamChecked: %v", err)
	}

	if !bytes.Equal(data, out.Bytes()) {
		t.Fatalf("checksummed round-trip mismatch")
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	enc, err := NewEncoder(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	coded, err := enc.EncodeBytes([]byte("abc"))
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	coded[1] = 99

	dec := NewDecoder(nil)
	_, err = dec.DecodeBytes(coded)
	if kind, ok := KindOf(err); !ok || kind != UnsupportedVersion {
		t.Fatalf("expected UnsupportedVersion, got %v", err)
	}
}

func TestDecodeDetectsCorruptNLField(t *testing.T) {
	enc, err := NewEncoder(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	// A chunk with more than one code length present, so the table has
	// more than a single N_l byte.
	data := []byte{0x41, 0x41, 0x41, 0x41, 0x42, 0x42, 0x43}
	coded, err := enc.EncodeBytes(data)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	// The table is NN=2, N_1=1, N_2=2 (0x41 gets length 1, 0x42 and 0x43
	// length 2). Byte 6 is N_1 (index: 0 bitstream header, 1 version, 2-3
	// chunk size, 4 L_max, 5 NN, 6 N_1). Raising N_1 to 3 makes the Kraft
	// sum 3*2^10 + 2*2^9 = 4096, above 2^11.
	coded[6] = 3

	dec := NewDecoder(nil)
	_, err = dec.DecodeBytes(coded)
	if err == nil {
		t.Fatal("expected CorruptStream for an N_l field that violates the Kraft sum")
	}

	if kind, ok := KindOf(err); !ok || kind != CorruptStream {
		t.Fatalf("expected CorruptStream, got %v", err)
	}
}

func TestNewConfigRejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		name          string
		chunkSize     int
		maxCodeLength int
	}{
		{"zero chunk size", 0, DefaultMaxCodeLength},
		{"non-multiple-of-1024", 100, DefaultMaxCodeLength},
		{"zero max length", 1024, 0},
		{"max length too large", 1024, 16},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewConfig(tc.chunkSize, tc.maxCodeLength); err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
		})
	}
}

func TestEventsFireInOrder(t *testing.T) {
	var seen []EventType

	listener := ListenerFunc(func(evt Event) {
		seen = append(seen, evt.Type)
	})

	enc, err := NewEncoder(DefaultConfig(), listener)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	if _, err := enc.EncodeBytes([]byte("abc")); err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}

	want := []EventType{EventChunkStart, EventChunkEnd, EventStreamEnd}
	if len(seen) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(seen), len(want), seen)
	}

	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("event %d: got %v, want %v", i, seen[i], want[i])
		}
	}
}
