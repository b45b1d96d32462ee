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

// Command huffc compresses and decompresses files with the canonical
// Huffman codec in package huffman.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"rsc.io/getopt"

	"github.com/trflynn89/libfly-sub001/huffman"
	"github.com/trflynn89/libfly-sub001/internal"
)

const extension = ".huf"

// Exit codes, numeric sentinels rather than process-signal style.
const (
	exitOK             = 0
	exitMissingParam   = 1
	exitInvalidParam   = 2
	exitOpenFile       = 3
	exitCreateFile     = 4
	exitReadFile       = 5
	exitWriteFile      = 6
	exitOverwriteFile  = 7
	exitCodecFailed    = 8
	exitRefuseTerminal = 9
)

var (
	decompress = flag.Bool("decompress", false, "specify to decompress")
	checked    = flag.Bool("checked", false, "write/verify a trailing xxhash64 digest")
	keep       = flag.Bool("keep", false, "keep (don't delete) input files")
	toStdout   = flag.Bool("stdout", false, "write to stdout; implies -k; only valid for a single input")
	force      = flag.Bool("force", false, "overwrite existing output and allow writing to a terminal")
	jobs       = flag.Int("jobs", 4, "number of files to process concurrently")
	chunkKB    = flag.Int("chunk-kb", huffman.DefaultChunkSize/1024, "chunk size in KiB")
	maxLen     = flag.Int("max-len", huffman.DefaultMaxCodeLength, "maximum Huffman code length (1-15)")
	recursive  = flag.Bool("recursive", false, "recurse into directory arguments")
	configPath = flag.String("config", "", "path to a key=value config file overriding defaults")
)

func main() {
	getopt.Alias("d", "decompress")
	getopt.Alias("x", "checked")
	getopt.Alias("k", "keep")
	getopt.Alias("c", "stdout")
	getopt.Alias("f", "force")
	getopt.Alias("j", "jobs")
	getopt.Alias("r", "recursive")

	if err := getopt.CommandLine.Parse(os.Args[1:]); err != nil {
		os.Exit(exitInvalidParam)
	}

	os.Exit(run())
}

func run() int {
	if *configPath != "" {
		if err := loadConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *configPath, err)
			return exitInvalidParam
		}
	}

	cfg, err := huffman.NewConfig(*chunkKB*1024, *maxLen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "huffc: %v\n", err)
		return exitInvalidParam
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "huffc: no input files")
		return exitMissingParam
	}

	files, err := expandArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "huffc: %v\n", err)
		return exitInvalidParam
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "huffc: no input files matched")
		return exitMissingParam
	}

	if *toStdout && len(files) > 1 {
		fmt.Fprintln(os.Stderr, "huffc: -stdout only supports a single input file")
		return exitInvalidParam
	}

	if !*force && *toStdout && !*decompress && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "huffc: refusing to write compressed data to a terminal")
		return exitRefuseTerminal
	}

	g := new(errgroup.Group)
	g.SetLimit(max(1, *jobs))

	codes := make([]int, len(files))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			codes[i] = processOne(cfg, path)
			return nil
		})
	}

	_ = g.Wait()

	for _, c := range codes {
		if c != exitOK {
			return c
		}
	}

	return exitOK
}

func expandArgs(args []string) ([]string, error) {
	var out []string

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[{") {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", arg, err)
			}
			out = append(out, matches...)
			continue
		}

		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if fi.IsDir() {
			list, err := internal.CreateFileList(arg, nil, *recursive, true)
			if err != nil {
				return nil, err
			}
			for _, fd := range list {
				out = append(out, fd.FullPath)
			}
			continue
		}

		out = append(out, arg)
	}

	return out, nil
}

func processOne(cfg huffman.Config, inPath string) int {
	outPath, removeInput := outputPath(inPath)

	if outPath != "-" && !*force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "%s: already exists\n", outPath)
			return exitOverwriteFile
		}
	}

	var err error

	if *decompress {
		err = runDecode(inPath, outPath)
	} else {
		err = runEncode(cfg, inPath, outPath)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
		if kind, ok := huffman.KindOf(err); ok {
			switch kind {
			case huffman.SourceReadFailed:
				return exitReadFile
			case huffman.SinkWriteFailed:
				return exitWriteFile
			}
		}
		return exitCodecFailed
	}

	if removeInput && !*keep && !*toStdout {
		if err := os.Remove(inPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s: unlink: %v\n", inPath, err)
			return exitWriteFile
		}
	}

	return exitOK
}

func outputPath(inPath string) (path string, removable bool) {
	if *toStdout {
		return "-", false
	}

	if *decompress {
		if strings.HasSuffix(inPath, extension) {
			return inPath[:len(inPath)-len(extension)], true
		}
		return inPath + ".out", true
	}

	return inPath + extension, true
}

func runEncode(cfg huffman.Config, inPath, outPath string) error {
	enc, err := huffman.NewEncoder(cfg, nil)
	if err != nil {
		return err
	}

	if outPath == "-" {
		in, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer in.Close()

		if *checked {
			return enc.EncodeStreamChecked(in, os.Stdout)
		}
		return enc.EncodeStream(in, os.Stdout)
	}

	if *checked {
		in, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		return enc.EncodeStreamChecked(in, out)
	}

	return enc.EncodeFile(inPath, outPath)
}

func runDecode(inPath, outPath string) error {
	dec := huffman.NewDecoder(nil)

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var out *os.File
	if outPath == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	if *checked {
		return dec.DecodeStreamChecked(in, out)
	}
	return dec.DecodeStream(in, out)
}

// loadConfigFile applies "chunk-kb=N" / "max-len=N" lines to the flags not
// already set explicitly on the command line. Hand-rolled key=value
// parsing, not a config format pulled in from a library.
func loadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("malformed line %q", line)
		}

		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])

		if set[key] {
			continue
		}

		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: value %q is not an integer", key, val)
		}

		switch key {
		case "chunk-kb":
			*chunkKB = n
		case "max-len":
			*maxLen = n
		case "jobs":
			*jobs = n
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
	}

	return nil
}
