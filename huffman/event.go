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

import "time"

// EventType identifies a point in the encoder/decoder lifecycle a Listener
// can observe.
type EventType int

const (
	// EventHeaderDecoded fires once the decoder has read version,
	// chunk_size_kb and L_max from the codec header.
	EventHeaderDecoded EventType = iota
	// EventChunkStart fires before a chunk's tree/table work begins.
	EventChunkStart
	// EventChunkEnd fires after a chunk has been fully emitted (encoder)
	// or fully decoded and flushed (decoder).
	EventChunkEnd
	// EventStreamEnd fires once encode_stream/decode_stream returns.
	EventStreamEnd
)

func (t EventType) String() string {
	switch t {
	case EventHeaderDecoded:
		return "HeaderDecoded"
	case EventChunkStart:
		return "ChunkStart"
	case EventChunkEnd:
		return "ChunkEnd"
	case EventStreamEnd:
		return "StreamEnd"
	default:
		return "Unknown"
	}
}

// Event describes one lifecycle notification. ChunkIndex is left at 0 for
// events that are not chunk-scoped (EventHeaderDecoded, EventStreamEnd).
// MaxCodeLength is the per-chunk maximum length NN for EventChunkEnd on
// the encoder side, and the stream's L_max for EventHeaderDecoded; it is
// 0 otherwise.
type Event struct {
	Type          EventType
	Time          time.Time
	ChunkIndex    int
	ByteCount     int64
	MaxCodeLength int
}

// Listener receives lifecycle notifications from an Encoder or Decoder. A
// nil Listener is a valid no-op; encoders and decoders never require one.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

func notify(l Listener, evt Event) {
	if l == nil {
		return
	}

	if evt.Time.IsZero() {
		evt.Time = time.Now()
	}

	l.OnEvent(evt)
}
