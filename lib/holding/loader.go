// Copyright 2021 Silvio Böhler
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

package holding

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Loader loads all records below a directory.
type Loader struct {
	// Encoding is the character encoding of the record files, one of
	// "utf-8" (default), "windows-1252" or "iso-8859-1".
	Encoding string
}

// Load walks dir recursively and decodes every *.csv file in lexical
// order of their paths.
func (l Loader) Load(dir string) ([]Record, error) {
	enc, err := lookupEncoding(l.Encoding)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		rec, err := l.readFile(path, enc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l Loader) readFile(path string, enc encoding.Encoding) (rec Record, err error) {
	f, err := os.Open(path)
	if err != nil {
		return rec, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	var r io.Reader = f
	if enc != nil {
		r = enc.NewDecoder().Reader(f)
	}
	return Decode(path, r)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// CheckEncoding returns an error if name is not a supported encoding.
func CheckEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}
