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

package adb_test

import (
	"testing"

	"github.com/OpenWSGR/autowsgr/core/assert"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android/adb"
)

func TestConnect(t_ *testing.T) {
	ctx := log.Testing(t_)

	d, err := adb.Connect(ctx, "127.0.0.1:7555")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "serial").ThatString(d.Serial()).Equals("127.0.0.1:7555")
	assert.For(ctx, "product").ThatString(d.Product()).Equals("cancro")

	// adb reports a refused connection on stdout with a zero exit status.
	_, err = adb.Connect(ctx, "10.0.2.2:5555")
	assert.For(ctx, "refused").ThatError(err).HasCause(adb.ErrConnectFailed)

	// The bridge accepted the connection but the device never made it into
	// the device list.
	_, err = adb.Connect(ctx, "127.0.0.1:21503")
	assert.For(ctx, "missing").ThatError(err).HasCause(adb.ErrConnectFailed)
}

func TestDisconnect(t_ *testing.T) {
	ctx := log.Testing(t_)
	err := adb.Disconnect(ctx, "127.0.0.1:7555")
	assert.For(ctx, "err").ThatError(err).Succeeded()
}
