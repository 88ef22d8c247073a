// Copyright 2025 walteh LLC
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

package document

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const defaultMode fs.FileMode = 0o644

// 📄 Document is the full text of a file held in memory
type Document struct {
	Path    string
	Content string
}

// 💾 SaveOptions controls how a document is written
type SaveOptions struct {
	// Atomic writes to a temp file next to the destination and renames it into place
	Atomic bool

	// Backup copies an existing destination to <path>.bak before writing
	Backup bool
}

// 📥 Load reads the whole file at path and checks that it is valid UTF-8
func Load(ctx context.Context, path string) (*Document, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading document")

	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("loading document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, "read", path, err)
		}
		return nil, newError(ErrIO, "read", path, err)
	}

	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return nil, newError(ErrEncoding, "read", path, err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("document loaded")

	return &Document{Path: path, Content: string(data)}, nil
}

// 📤 Save replaces the file at doc.Path with doc.Content. Existing content is
// truncated, never appended to. The mode of an existing file is kept.
func Save(ctx context.Context, doc *Document, opts SaveOptions) error {
	logger := zerolog.Ctx(ctx)

	if err := ctx.Err(); err != nil {
		return errors.Errorf("saving document: %w", err)
	}

	mode := defaultMode
	info, err := os.Stat(doc.Path)
	switch {
	case err == nil:
		if info.IsDir() {
			return newError(ErrIO, "write", doc.Path, errors.New("destination is a directory"))
		}
		mode = info.Mode().Perm()
		if opts.Backup {
			if err := backup(doc.Path, mode); err != nil {
				return newError(ErrIO, "write", doc.Path, err)
			}
			logger.Debug().Str("path", doc.Path+".bak").Msg("backup written")
		}
	case !errors.Is(err, fs.ErrNotExist):
		return newError(ErrIO, "write", doc.Path, err)
	}

	if opts.Atomic {
		err = writeAtomic(doc.Path, []byte(doc.Content), mode)
	} else {
		err = os.WriteFile(doc.Path, []byte(doc.Content), mode)
	}
	if err != nil {
		return newError(ErrIO, "write", doc.Path, err)
	}

	logger.Debug().Str("path", doc.Path).Int("bytes", len(doc.Content)).Bool("atomic", opts.Atomic).Msg("document saved")
	return nil
}

// writeAtomic writes to a sibling temp file then renames it over path
func writeAtomic(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// backup copies path to path.bak, replacing any earlier backup
func backup(path string, mode fs.FileMode) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Errorf("opening file for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path+".bak", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Errorf("copying backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return errors.Errorf("closing backup: %w", err)
	}
	return nil
}
