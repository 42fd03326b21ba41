// Package workspace provides filesystem access jailed to the shared
// workspace root. Every path from a caller is resolved against the root and
// rejected if it escapes it.
package workspace

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/devforge/devtools-server/internal/protocol"
)

// Dir is a workspace root directory.
type Dir struct {
	root string
}

// New resolves the root to an absolute path and returns a Dir. The directory
// is created if it does not exist yet.
func New(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute workspace root.
func (d *Dir) Root() string { return d.root }

// Resolve joins a caller-supplied path with the root and rejects any result
// that escapes it, including "../" traversal and absolute paths outside the
// root.
func (d *Dir) Resolve(path string) (string, error) {
	cleaned := filepath.Clean(strings.TrimSpace(path))
	resolved := cleaned
	if !filepath.IsAbs(cleaned) {
		resolved = filepath.Join(d.root, cleaned)
	}
	if resolved != d.root && !strings.HasPrefix(resolved, d.root+string(filepath.Separator)) {
		return "", protocol.NewError(protocol.KindPathTraversalRejected, "path %q escapes the workspace", path)
	}
	return resolved, nil
}

// ReadFile returns the file content.
func (d *Dir) ReadFile(path string) (string, error) {
	resolved, err := d.Resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes content to a file, creating parent directories as needed.
func (d *Dir) WriteFile(path, content string) error {
	resolved, err := d.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CreateFile creates a new file with content and fails if it already exists.
func (d *Dir) CreateFile(path, content string) error {
	resolved, err := d.Resolve(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err == nil {
		return fmt.Errorf("create %s: file already exists", path)
	}
	return d.WriteFile(path, content)
}

// DeleteFile removes a file.
func (d *Dir) DeleteFile(path string) error {
	resolved, err := d.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// RenameFile moves a file inside the workspace.
func (d *Dir) RenameFile(from, to string) error {
	src, err := d.Resolve(from)
	if err != nil {
		return err
	}
	dst, err := d.Resolve(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", to, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename %s to %s: %w", from, to, err)
	}
	return nil
}

// CopyFile copies a file inside the workspace.
func (d *Dir) CopyFile(from, to string) error {
	src, err := d.Resolve(from)
	if err != nil {
		return err
	}
	dst, err := d.Resolve(to)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", from, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", to, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", to, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", from, to, err)
	}
	return out.Close()
}

// CreateDirectory creates a directory and its parents.
func (d *Dir) CreateDirectory(path string) error {
	resolved, err := d.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// DeleteDirectory removes a directory recursively.
func (d *Dir) DeleteDirectory(path string) error {
	resolved, err := d.Resolve(path)
	if err != nil {
		return err
	}
	if resolved == d.root {
		return fmt.Errorf("delete directory: refusing to remove the workspace root")
	}
	if err := os.RemoveAll(resolved); err != nil {
		return fmt.Errorf("delete directory %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a path exists.
func (d *Dir) Exists(path string) (bool, error) {
	resolved, err := d.Resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return true, nil
}

// Entry describes one directory listing item.
type Entry struct {
	// Name is the base name of the entry.
	Name string `json:"name"`
	// IsDirectory reports whether the entry is a directory.
	IsDirectory bool `json:"isDirectory"`
}

// ListDirectory lists the immediate entries of a directory, sorted by name.
func (d *Dir) ListDirectory(path string) ([]Entry, error) {
	resolved, err := d.Resolve(path)
	if err != nil {
		return nil, err
	}
	items, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, Entry{Name: item.Name(), IsDirectory: item.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListFiles walks the workspace and returns all file paths relative to the
// root. Backs the workspace://files resource.
func (d *Dir) ListFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return relErr
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk workspace: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Stats describes a filesystem entry.
type Stats struct {
	// Path is the caller-supplied path.
	Path string `json:"path"`
	// Size is the entry size in bytes.
	Size int64 `json:"size"`
	// IsDirectory reports whether the entry is a directory.
	IsDirectory bool `json:"isDirectory"`
	// Mode is the textual file mode.
	Mode string `json:"mode"`
	// ModifiedAt is the last modification time in RFC 3339 form.
	ModifiedAt string `json:"modifiedAt"`
}

// GetStats returns metadata for a path.
func (d *Dir) GetStats(path string) (Stats, error) {
	resolved, err := d.Resolve(path)
	if err != nil {
		return Stats{}, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return Stats{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Stats{
		Path:        path,
		Size:        info.Size(),
		IsDirectory: info.IsDir(),
		Mode:        info.Mode().String(),
		ModifiedAt:  info.ModTime().UTC().Format(time.RFC3339),
	}, nil
}
