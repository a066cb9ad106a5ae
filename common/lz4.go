// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"bytes"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// CompressedExt marks files stored in the lz4 frame format
const CompressedExt = ".lz4"

// IsCompressed reports whether fn names an lz4 compressed file
func IsCompressed(fn string) bool {
	return strings.HasSuffix(strings.ToLower(fn), CompressedExt)
}

// Compress encodes in as a single lz4 frame
func Compress(in []byte) ([]byte, error) {
	r := bytes.NewReader(in)
	w := &bytes.Buffer{}
	zw := lz4.NewWriter(w)
	if _, err := io.Copy(zw, r); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decompress reads an lz4 stream to completion
func Decompress(r io.Reader) ([]byte, error) {
	w := &bytes.Buffer{}
	zr := lz4.NewReader(r)
	if _, err := io.Copy(w, zr); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
