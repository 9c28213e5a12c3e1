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

package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"go.uber.org/multierr"
)

// ErrLocked is returned by Lock when another process holds the lock.
var ErrLocked = errors.New("ledger is locked")

// File is a ledger persisted as CSV.
type File struct {
	Path string
}

// Load reads the ledger. A missing file is an empty ledger.
func (f File) Load() (t *Table, err error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return new(Table), nil
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	t, err = Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return t, nil
}

// Save replaces the ledger atomically, creating parent directories as
// needed.
func (f File) Save(t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(f.Path, &buf)
}

// Lock acquires an advisory lock on a lock file next to the ledger. The
// lock is held by the operating system and released when the process
// exits, so a lock file left behind by a crashed run does not block later
// runs. The returned function releases the lock.
func (f File) Lock() (unlock func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return nil, err
	}
	fl := flock.New(f.Path + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: another run holds %s", ErrLocked, fl.Path())
	}
	return fl.Unlock, nil
}
