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

package file_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/os/file"
)

func TestPathSmash(t *testing.T) {
	assert := assert.To(t)
	p := file.Abs("logs").Join("run.txt")
	dir, name, ext := p.Smash()
	assert.For("name").ThatString(name).Equals("run")
	assert.For("ext").ThatString(ext).Equals(".txt")
	assert.For("rejoined").ThatString(dir.Join(name + ext).System()).Equals(p.System())
}

func TestPathNoExt(t *testing.T) {
	assert := assert.To(t)
	for _, test := range []struct {
		path     file.Path
		expected string
	}{
		{file.Abs("tools").Join("adb.exe"), "adb"},
		{file.Abs("tools").Join("adb"), "adb"},
		{file.Abs("a.b").Join("c.d.e"), "c.d"},
	} {
		assert.For("%v", test.path).ThatString(test.path.NoExt().Basename()).Equals(test.expected)
	}
}

func TestPathIsEmpty(t *testing.T) {
	assert := assert.To(t)
	assert.For("zero path").That(file.Path{}.IsEmpty()).Equals(true)
	assert.For("abs path").That(file.Abs("anything").IsEmpty()).Equals(false)
}

func TestPathJoin(t *testing.T) {
	assert := assert.To(t)
	base := file.Abs("foo")
	assert.For("no args").ThatString(base.Join().System()).Equals(base.System())
	assert.For("slash form").ThatString(base.Join("bar/cat").System()).
		Equals(base.Join("bar", "cat").System())
}
