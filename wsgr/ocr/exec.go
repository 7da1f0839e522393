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

package ocr

import (
	"bytes"
	"context"
	"image/png"
	"strconv"
	"strings"

	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
)

// Exec is an Engine that shells out to a recognizer process.
//
// The image is written to the process as PNG on stdin. Each recognized
// string comes back as one stdout line of the form "<confidence>\t<text>",
// best first.
type Exec struct {
	// Path is the recognizer executable.
	Path string
	// Target runs the process. If nil, commands run on the local machine.
	Target shell.Target
}

var _ Engine = (*Exec)(nil)

func (e *Exec) run(ctx context.Context, img *vision.Screen, allowlist string) (string, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img.Image()); err != nil {
		return "", log.Err(ctx, err, "Encoding OCR input")
	}
	cmd := shell.Command(e.Path)
	if allowlist != "" {
		cmd = cmd.With("--allowlist", allowlist)
	}
	if e.Target != nil {
		cmd = cmd.On(e.Target)
	}
	return cmd.Read(buf).Call(ctx)
}

// Recognize returns every string found in the image, best first.
func (e *Exec) Recognize(ctx context.Context, img *vision.Screen, allowlist string) ([]Text, error) {
	out, err := e.run(ctx, img, allowlist)
	if err != nil {
		return nil, err
	}
	return parseTexts(ctx, out)
}

// RecognizeSingle returns the best string found in the image.
func (e *Exec) RecognizeSingle(ctx context.Context, img *vision.Screen, allowlist string) (Text, error) {
	texts, err := e.Recognize(ctx, img, allowlist)
	if err != nil {
		return Text{}, err
	}
	if len(texts) == 0 {
		return Text{}, ErrNoText
	}
	return texts[0], nil
}

func parseTexts(ctx context.Context, out string) ([]Text, error) {
	var texts []Text
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		conf, text, found := strings.Cut(line, "\t")
		if !found {
			return nil, log.Errf(ctx, nil, "Malformed recognizer line %q", line)
		}
		c, err := strconv.ParseFloat(conf, 64)
		if err != nil {
			return nil, log.Errf(ctx, err, "Malformed recognizer confidence %q", conf)
		}
		texts = append(texts, Text{Text: text, Confidence: c})
	}
	return texts, nil
}
