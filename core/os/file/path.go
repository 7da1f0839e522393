// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// Path is a clean absolute path with platform specific separators.
type Path struct{ value string }

const homeDirTilde = "~"
const homeDirPrefix = homeDirTilde + string(filepath.Separator)

// Abs is the primary constructor of new Path objects from strings using either the / or system separator.
func Abs(path string) Path {
	if strings.HasPrefix(path, homeDirPrefix) {
		u, _ := user.Current()
		path = filepath.Join(u.HomeDir, strings.TrimLeft(path, homeDirTilde))
	}
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return Path{path}
	}
	return Path{filepath.Clean(abs)}
}

// ExecutablePath returns the path to the running executable.
func ExecutablePath() Path {
	path := Abs(os.Args[0])
	if path.Exists() {
		return path
	}
	path, err := FindExecutable(os.Args[0])
	if err != nil {
		panic(err)
	}
	return path
}

// FindExecutable searches the system search path for the named binary, and
// returns a non empty Path if found. OS executable file extensions (".exe") are
// automatically considered when searching.
func FindExecutable(name string) (Path, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Path{}, err
	}
	return Abs(path), nil
}

// IsEmpty returns true if the path has no value.
func (p Path) IsEmpty() bool { return p.value == "" }

// System returns the full absolute path using the system separator.
func (p Path) System() string { return p.value }

// The default string form uses the system representation.
func (p Path) String() string { return p.value }

// Basename returns the name part of the path (without directories).
func (p Path) Basename() string { return filepath.Base(p.value) }

// Smash returns the parent, name and extension of a path.
func (p Path) Smash() (Path, string, string) {
	dir, name := filepath.Split(p.value)
	ext := filepath.Ext(name)
	name = name[:len(name)-len(ext)]
	return Path{dir}, name, ext
}

// NoExt returns the path excluding the file extension or '.'.
func (p Path) NoExt() Path {
	ext := filepath.Ext(p.value)
	return Path{p.value[:len(p.value)-len(ext)]}
}

// Join returns a path formed from joining this base with a child path.
// If there are any / characters in the strings, they will be converted to they system separator.
func (p Path) Join(join ...string) Path {
	if len(join) == 0 {
		return p
	}
	trailing := filepath.Join(join...)
	trailing = filepath.FromSlash(trailing)
	return Path{filepath.Clean(filepath.Join(p.value, trailing))}
}

// Info returns the file information for ths path.
func (p Path) Info() os.FileInfo {
	info, _ := os.Stat(p.value)
	return info
}

// Exists returns true if this File exists.
func (p Path) Exists() bool {
	return p.Info() != nil
}
