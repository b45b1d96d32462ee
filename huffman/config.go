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

const (
	// DefaultChunkSize is 256 KiB, the default number of input bytes
	// processed as one self-contained Huffman chunk.
	DefaultChunkSize = 256 * 1024

	// DefaultMaxCodeLength is the default L_max.
	DefaultMaxCodeLength = 11

	maxChunkSizeKB = 0xFFFF // chunk_size_kb is a 16-bit wire field
)

// Config holds the per-stream parameters an Encoder or Decoder is built
// with. Construct via DefaultConfig or NewConfig; a Config is immutable
// once returned and may be reused across many Encoder/Decoder instances.
type Config struct {
	// ChunkSize is the number of input bytes grouped into one chunk, each
	// with its own code table. Must be a positive multiple of 1024 no
	// larger than 65535*1024.
	ChunkSize int

	// MaxCodeLength is L_max, the longest permitted Huffman code, in
	// [1, 15].
	MaxCodeLength int
}

// DefaultConfig returns the documented defaults: a 256 KiB chunk size and
// L_max = 11.
func DefaultConfig() Config {
	return Config{ChunkSize: DefaultChunkSize, MaxCodeLength: DefaultMaxCodeLength}
}

// NewConfig validates chunkSize and maxCodeLength and returns a Config, or
// an InvalidParameter error.
func NewConfig(chunkSize, maxCodeLength int) (Config, error) {
	cfg := Config{ChunkSize: chunkSize, MaxCodeLength: maxCodeLength}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ChunkSize <= 0 || c.ChunkSize%1024 != 0 {
		return newError(InvalidParameter, "chunk size must be a positive multiple of 1024 bytes")
	}

	if c.ChunkSize/1024 > maxChunkSizeKB {
		return newError(InvalidParameter, "chunk size exceeds the 16-bit chunk_size_kb wire field")
	}

	if c.MaxCodeLength < minCodeLength || c.MaxCodeLength > maxCodeLength {
		return newError(InvalidParameter, "max code length must be in [1, 15]")
	}

	return nil
}

func (c Config) chunkSizeKB() uint16 {
	return uint16(c.ChunkSize / 1024)
}
