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

package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var pathSeparator = string([]byte{os.PathSeparator})

// FileData is a file path paired with its size, as collected while
// expanding a command-line argument that turned out to be a directory.
type FileData struct {
	FullPath string
	Path     string
	Name     string
	Size     int64
}

// NewFileData creates an instance of FileData from a file path and size.
func NewFileData(fullPath string, size int64) *FileData {
	this := &FileData{}
	this.FullPath = fullPath
	this.Size = size
	this.Path, this.Name = filepath.Split(fullPath)
	return this
}

// FileCompare sorts FileData by parent directory path, then by name.
type FileCompare struct {
	data []FileData
}

// NewFileCompare wraps data for sorting by path.
func NewFileCompare(data []FileData) *FileCompare {
	return &FileCompare{data: data}
}

// Len returns the number of entries.
func (this FileCompare) Len() int {
	return len(this.data)
}

// Swap swaps two entries.
func (this FileCompare) Swap(i, j int) {
	this.data[i], this.data[j] = this.data[j], this.data[i]
}

// Less orders by parent directory path, then by file name.
func (this FileCompare) Less(i, j int) bool {
	if res := strings.Compare(this.data[i].Path, this.data[j].Path); res != 0 {
		return res < 0
	}
	return strings.Compare(this.data[i].Name, this.data[j].Name) < 0
}

// CreateFileList expands target (a file, or a directory tree when
// isRecursive) into a flat list of regular files, skipping dot-files when
// ignoreDotFiles is set. Used by cmd/huffc to turn a bare directory
// argument into the same kind of file list a glob pattern would produce.
func CreateFileList(target string, fileList []FileData, isRecursive, ignoreDotFiles bool) ([]FileData, error) {
	fi, err := os.Stat(target)
	if err != nil {
		return fileList, err
	}

	if ignoreDotFiles && isDotFile(target) {
		return fileList, nil
	}

	if fi.Mode().IsRegular() {
		return append(fileList, *NewFileData(target, fi.Size())), nil
	}

	if !fi.IsDir() {
		return fileList, nil
	}

	if !isRecursive {
		entries, err := os.ReadDir(target)
		if err != nil {
			return fileList, err
		}

		for _, de := range entries {
			if !de.Type().IsRegular() {
				continue
			}
			if ignoreDotFiles && isDotFile(de.Name()) {
				continue
			}

			info, err := de.Info()
			if err != nil {
				return fileList, err
			}

			fileList = append(fileList, *NewFileData(filepath.Join(target, de.Name()), info.Size()))
		}

		return fileList, nil
	}

	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ignoreDotFiles && isDotFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		fileList = append(fileList, *NewFileData(path, info.Size()))
		return nil
	})

	return fileList, err
}

func isDotFile(name string) bool {
	if idx := strings.LastIndex(name, pathSeparator); idx >= 0 {
		name = name[idx+1:]
	}
	return len(name) > 0 && name[0] == '.'
}
