package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files flat in a directory served back under a URL prefix.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &Local{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

func (l *Local) Dir() string { return l.dir }

func (l *Local) URLPrefix() string { return l.urlPrefix }

// Save writes the object under its name. The ref is the bare name, which the
// static route serves at URLPrefix()/name.
func (l *Local) Save(_ context.Context, obj Object) (string, error) {
	name, err := l.localName(obj.Name)
	if err != nil {
		return "", err
	}

	absPath := filepath.Join(l.dir, name)
	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, obj.Body); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("close file: %w", err)
	}

	return name, nil
}

func (l *Local) Remove(_ context.Context, ref string) error {
	name, err := l.localName(strings.TrimPrefix(ref, l.urlPrefix+"/"))
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(l.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotExist
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// localName rejects names that would leave the uploads directory.
func (l *Local) localName(name string) (string, error) {
	name = filepath.FromSlash(name)
	if name == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("invalid file reference %q", name)
	}
	return name, nil
}
