// Package bucket is the object-storage capability behind entity side objects
// (company logos, product images).
package bucket

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Bucket stores opaque objects under string keys. Delete reports false when
// the key does not exist and errors only on transport failures, so callers
// can tell "already gone" from "try again later".
type Bucket interface {
	Upload(ctx context.Context, localPath string, key string) error
	Put(ctx context.Context, key string, r io.Reader) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// FSBucket keeps objects as files under a root directory. Keys are slash
// separated and confined to the root.
type FSBucket struct {
	root string
}

func NewFSBucket(root string) (*FSBucket, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve bucket root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create bucket root: %w", err)
	}
	return &FSBucket{root: abs}, nil
}

func (b *FSBucket) resolve(key string) (string, error) {
	cleaned := filepath.Clean("/" + strings.ReplaceAll(strings.TrimSpace(key), "\\", "/"))
	if cleaned == "/" || cleaned == "." {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	resolved := filepath.Join(b.root, filepath.FromSlash(cleaned))
	if resolved != b.root && !strings.HasPrefix(resolved, b.root+string(filepath.Separator)) {
		return "", fmt.Errorf("object key %q escapes the bucket root", key)
	}
	return resolved, nil
}

func (b *FSBucket) Upload(ctx context.Context, localPath string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resolved, err := b.resolve(key)
	if err != nil {
		return err
	}

	input, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open upload source: %w", err)
	}
	defer input.Close()

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("prepare object directory: %w", err)
	}

	output, err := os.OpenFile(resolved, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create object %q: %w", key, err)
	}

	_, copyErr := io.Copy(output, input)
	closeErr := output.Close()
	if copyErr != nil {
		return fmt.Errorf("write object %q: %w", key, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("flush object %q: %w", key, closeErr)
	}
	return nil
}

// Put writes an object straight from a reader, replacing any previous
// content under the key.
func (b *FSBucket) Put(ctx context.Context, key string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resolved, err := b.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("prepare object directory: %w", err)
	}

	output, err := os.OpenFile(resolved, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create object %q: %w", key, err)
	}

	_, copyErr := io.Copy(output, r)
	closeErr := output.Close()
	if copyErr != nil {
		return fmt.Errorf("write object %q: %w", key, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("flush object %q: %w", key, closeErr)
	}
	return nil
}

func (b *FSBucket) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	resolved, err := b.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat object %q: %w", key, err)
	}
	return true, nil
}

func (b *FSBucket) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	resolved, err := b.resolve(key)
	if err != nil {
		return false, err
	}

	if err := os.Remove(resolved); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove object %q: %w", key, err)
	}
	return true, nil
}
