package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover resolves opts.Paths into a sorted, deduplicated list of absolute
// file paths. Directories are walked recursively, skipping hidden entries
// and anything matching opts.Ignore.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	walker := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			// Named files bypass the extension filter but not ignore globs.
			if !walker.ignored(absPath) {
				walker.add(absPath)
			}
			continue
		}

		if err := walker.walk(ctx, absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(walker.files)
	return walker.files, nil
}

type walker struct {
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(file string) {
	if _, ok := w.seen[file]; ok {
		return
	}
	w.seen[file] = struct{}{}
	w.files = append(w.files, file)
}

func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := current != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || w.ignored(current) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(ctx, current)
		}

		if hasExtension(current, w.extensions) && !w.ignored(current) {
			w.add(current)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink found during a walk. Broken links are skipped.
func (w *walker) symlink(ctx context.Context, link string) error {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if info.IsDir() {
		if !w.opts.FollowSymlinks {
			return nil
		}
		// Walk the target so WalkDir does not Lstat the link and stop.
		return w.walk(ctx, target)
	}

	if hasExtension(link, w.extensions) && !w.ignored(link) {
		w.add(link)
	}
	return nil
}

func (w *walker) ignored(file string) bool {
	rel, err := filepath.Rel(w.workDir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.opts.Ignore {
		if matchGlob(filepath.ToSlash(pattern), rel) {
			return true
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func hasExtension(file string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, candidate := range extensions {
		if strings.ToLower(candidate) == ext {
			return true
		}
	}
	return false
}

// matchGlob reports whether the slash-separated relative path name matches
// pattern. "**" matches any number of path segments. A pattern without a
// slash is matched against every segment of name, so "node_modules" and
// "*.min.js" work at any depth.
func matchGlob(pattern, name string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		return false
	}

	segments := strings.Split(name, "/")

	if !strings.Contains(pattern, "/") && pattern != "**" {
		for _, segment := range segments {
			if ok, err := path.Match(pattern, segment); err == nil && ok {
				return true
			}
		}
		return false
	}

	return matchSegments(strings.Split(pattern, "/"), segments)
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(name); skip++ {
				if matchSegments(rest, name[skip:]) {
					return true
				}
			}
			return false
		}

		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}

	// A directory pattern also matches everything beneath it.
	return true
}
