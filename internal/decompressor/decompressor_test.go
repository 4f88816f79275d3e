// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decompressor

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const statement = "_:a <p> \"x\" .\n"

var testDecompressor = []struct {
	message string
	input   io.Reader
	expect  string
	err     error
}{
	{
		message: "text input",
		input:   strings.NewReader(statement),
		expect:  statement,
	},
	{
		message: "short input",
		input:   strings.NewReader("#\n"),
		expect:  "#\n",
	},
	{
		message: "empty input",
		input:   strings.NewReader(""),
		err:     io.EOF,
	},
	{
		message: "gzip input",
		input: bytes.NewReader([]byte{
			0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x03, 0x8b, 0xb7, 0x4a, 0x54, 0xb0, 0x29,
			0xb0, 0x53, 0x50, 0xaa, 0x50, 0x52, 0xd0, 0xe3, 0x02, 0x00, 0xf1, 0x35, 0x9d, 0x2f, 0x0e, 0x00,
			0x00, 0x00,
		}),
		expect: statement,
	},
	{
		message: "bzip2 input",
		input: bytes.NewReader([]byte{
			0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x4c, 0x5c, 0x06, 0xd0, 0x00, 0x00,
			0x05, 0x5b, 0x80, 0x00, 0x10, 0x50, 0x01, 0x00, 0x15, 0x00, 0x00, 0xa0, 0x00, 0x40, 0x40, 0x20,
			0x00, 0x31, 0x00, 0xd3, 0x4d, 0x04, 0x00, 0x62, 0x56, 0xd8, 0x5a, 0xc6, 0x10, 0x28, 0x78, 0xbb,
			0x92, 0x29, 0xc2, 0x84, 0x82, 0x62, 0xe0, 0x36, 0x80,
		}),
		expect: statement,
	},
	{
		message: "bad gzip input",
		input:   strings.NewReader("\x1f\x8brdf data\n"),
		err:     gzip.ErrHeader,
	},
}

func TestDecompressor(t *testing.T) {
	for _, c := range testDecompressor {
		t.Run(c.message, func(t *testing.T) {
			r, err := New(c.input)
			if c.err != nil {
				require.Equal(t, c.err, err)
				return
			}
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, c.expect, string(data))
		})
	}
}

func TestBadBzip2(t *testing.T) {
	r, err := New(strings.NewReader("BZhrdf data\n"))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.Error(t, err)
}
