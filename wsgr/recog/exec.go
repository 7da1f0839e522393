// Copyright (C) 2018 Google Inc.
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

package recog

import (
	"bytes"
	"context"
	"image/png"
	"strconv"
	"strings"

	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Exec is a Helper that shells out to the recognition helper process.
//
// Images are streamed to the process as consecutive PNGs on stdin; PNG
// streams are self-delimiting, so no framing is needed. Results come back
// on stdout: one space-separated token line for enemy recognition, a single
// node letter for map recognition, and one "start,end" line per located
// text row.
type Exec struct {
	// Path is the helper executable.
	Path string
	// Target runs the process. If nil, commands run on the local machine.
	Target shell.Target
}

var _ Helper = (*Exec)(nil)

func (e *Exec) run(ctx context.Context, mode string, imgs ...*vision.Screen) (string, error) {
	buf := &bytes.Buffer{}
	for _, img := range imgs {
		if err := png.Encode(buf, img.Image()); err != nil {
			return "", log.Err(ctx, err, "Encoding helper input")
		}
	}
	cmd := shell.Command(e.Path, mode)
	if e.Target != nil {
		cmd = cmd.On(e.Target)
	}
	return cmd.Read(buf).Call(ctx)
}

// RecognizeEnemy classifies the six enemy slot crops.
func (e *Exec) RecognizeEnemy(ctx context.Context, crops []*vision.Screen) ([]ship.Class, error) {
	if len(crops) != EnemySlots {
		return nil, log.Errf(ctx, nil, "Expected %d enemy crops, got %d", EnemySlots, len(crops))
	}
	out, err := e.run(ctx, "enemy", crops...)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(out)
	if len(tokens) != EnemySlots {
		return nil, log.Errf(ctx, nil, "Expected %d enemy tokens, got %q", EnemySlots, out)
	}
	classes := make([]ship.Class, EnemySlots)
	for i, token := range tokens {
		c, ok := ship.ParseClass(token)
		if !ok || c == ship.ALL {
			return nil, log.Errf(ctx, nil, "Unknown enemy token %q", token)
		}
		classes[i] = c
	}
	return classes, nil
}

// RecognizeMap reads the node letter shown in the crop.
func (e *Exec) RecognizeMap(ctx context.Context, crop *vision.Screen) (string, error) {
	out, err := e.run(ctx, "map", crop)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if len(out) != 1 || (out != "0" && (out[0] < 'A' || out[0] > 'J')) {
		return "", log.Errf(ctx, nil, "Unexpected node letter %q", out)
	}
	return out, nil
}

// Locate finds the text rows in the image.
func (e *Exec) Locate(ctx context.Context, img *vision.Screen) ([]RowSpan, error) {
	out, err := e.run(ctx, "locate", img)
	if err != nil {
		return nil, err
	}
	var spans []RowSpan
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		start, end, found := strings.Cut(line, ",")
		if !found {
			return nil, log.Errf(ctx, nil, "Malformed row span %q", line)
		}
		s, err1 := strconv.Atoi(strings.TrimSpace(start))
		t, err2 := strconv.Atoi(strings.TrimSpace(end))
		if err1 != nil || err2 != nil || s < 0 || t <= s {
			return nil, log.Errf(ctx, nil, "Malformed row span %q", line)
		}
		spans = append(spans, RowSpan{Start: s, End: t})
	}
	return spans, nil
}
