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

// Command huffbench compares this module's canonical Huffman codec
// against two general-purpose reference codecs on the same input and
// reports compression ratio and throughput.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"

	"github.com/trflynn89/libfly-sub001/huffman"
)

var maxLen = flag.Int("max-len", huffman.DefaultMaxCodeLength, "maximum Huffman code length (1-15)")

type result struct {
	name       string
	origSize   int
	codedSize  int
	encodeTime time.Duration
	decodeTime time.Duration
	ok         bool
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: huffbench <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "huffbench: %v\n", err)
		os.Exit(1)
	}

	results := []result{
		benchHuffman(data),
		benchFlate(data),
		benchSnappy(data),
	}

	fmt.Printf("%-10s %12s %12s %8s %14s %14s\n", "codec", "original", "coded", "ratio", "encode", "decode")

	for _, r := range results {
		status := ""
		if !r.ok {
			status = " (round-trip FAILED)"
		}

		ratio := float64(r.codedSize) / float64(r.origSize)
		fmt.Printf("%-10s %12d %12d %7.3f%% %14s %14s%s\n",
			r.name, r.origSize, r.codedSize, ratio*100, r.encodeTime, r.decodeTime, status)
	}
}

func benchHuffman(data []byte) result {
	cfg, err := huffman.NewConfig(huffman.DefaultChunkSize, *maxLen)
	if err != nil {
		return result{name: "huffman", origSize: len(data)}
	}

	enc, err := huffman.NewEncoder(cfg, nil)
	if err != nil {
		return result{name: "huffman", origSize: len(data)}
	}

	start := time.Now()
	coded, err := enc.EncodeBytes(data)
	encodeTime := time.Since(start)
	if err != nil {
		return result{name: "huffman", origSize: len(data), encodeTime: encodeTime}
	}

	dec := huffman.NewDecoder(nil)

	start = time.Now()
	decoded, err := dec.DecodeBytes(coded)
	decodeTime := time.Since(start)

	return result{
		name:       "huffman",
		origSize:   len(data),
		codedSize:  len(coded),
		encodeTime: encodeTime,
		decodeTime: decodeTime,
		ok:         err == nil && bytes.Equal(data, decoded),
	}
}

func benchFlate(data []byte) result {
	var buf bytes.Buffer

	start := time.Now()
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err == nil {
		_, err = w.Write(data)
	}
	if err == nil {
		err = w.Close()
	}
	encodeTime := time.Since(start)

	if err != nil {
		return result{name: "flate", origSize: len(data), encodeTime: encodeTime}
	}

	start = time.Now()
	r := flate.NewReader(bytes.NewReader(buf.Bytes()))
	decoded, err := io.ReadAll(r)
	decodeTime := time.Since(start)

	return result{
		name:       "flate",
		origSize:   len(data),
		codedSize:  buf.Len(),
		encodeTime: encodeTime,
		decodeTime: decodeTime,
		ok:         err == nil && bytes.Equal(data, decoded),
	}
}

func benchSnappy(data []byte) result {
	start := time.Now()
	coded := snappy.Encode(nil, data)
	encodeTime := time.Since(start)

	start = time.Now()
	decoded, err := snappy.Decode(nil, coded)
	decodeTime := time.Since(start)

	return result{
		name:       "snappy",
		origSize:   len(data),
		codedSize:  len(coded),
		encodeTime: encodeTime,
		decodeTime: decodeTime,
		ok:         err == nil && bytes.Equal(data, decoded),
	}
}
