package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sheetform/pkg/orchestrator"
	"github.com/goliatone/go-sheetform/pkg/render"
	"github.com/goliatone/go-sheetform/pkg/renderers/openapi"
	"github.com/goliatone/go-sheetform/pkg/renderers/tui"
	"github.com/goliatone/go-sheetform/pkg/sheet"
)

type converter struct {
	orch     *orchestrator.Orchestrator
	logger   *zap.Logger
	renderer string
	output   string
	multi    bool

	mu     sync.Mutex
	stdout io.Writer
}

// convertAll converts every input, at most jobs at a time. Every input is
// attempted; the first failure is returned.
func (c *converter) convertAll(ctx context.Context, inputs []string, jobs int) error {
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			return c.convert(ctx, input)
		})
	}
	return g.Wait()
}

func (c *converter) convert(ctx context.Context, input string) error {
	started := time.Now()
	log := c.logger.With(zap.String("input", input))

	page, err := c.orch.Page(ctx, orchestrator.Request{Source: sheet.SourceFromFile(input)})
	if err != nil {
		log.Error("conversion failed", zap.Error(err))
		return err
	}
	out, err := c.orch.Render(ctx, page, c.renderer, render.RenderOptions{})
	if err != nil {
		log.Error("conversion failed", zap.Error(err))
		return err
	}

	target := c.targetFor(input)
	fingerprint := xxh3.Hash(out)
	if target == "" {
		c.mu.Lock()
		_, err = c.stdout.Write(append(out, '\n'))
		c.mu.Unlock()
		if err != nil {
			log.Error("write failed", zap.Error(err))
			return err
		}
	} else {
		written, err := writeIfChanged(target, out)
		if err != nil {
			log.Error("write failed", zap.String("output", target), zap.Error(err))
			return err
		}
		if !written {
			log.Info("output unchanged", zap.String("output", target), zap.String("fingerprint", formatFingerprint(fingerprint)))
			return nil
		}
	}

	log.Info("converted",
		zap.String("output", displayTarget(target)),
		zap.Int("fields", page.Len()),
		zap.String("fingerprint", formatFingerprint(fingerprint)),
		zap.Duration("duration", time.Since(started)),
	)
	return nil
}

// targetFor maps an input to its output path. An empty result means stdout.
func (c *converter) targetFor(input string) string {
	if c.output == "" {
		if c.multi {
			return replaceExt(input, extensionFor(c.renderer))
		}
		return ""
	}
	if c.multi || isDir(c.output) {
		base := filepath.Base(replaceExt(input, extensionFor(c.renderer)))
		return filepath.Join(c.output, base)
	}
	return c.output
}

// checkTargets rejects input lists where two inputs would write the same
// output file, such as equal base names from different directories.
func (c *converter) checkTargets(inputs []string) error {
	owners := make(map[string]string, len(inputs))
	for _, input := range inputs {
		target := c.targetFor(input)
		if target == "" {
			continue
		}
		key := filepath.Clean(target)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if other, taken := owners[key]; taken {
			return fmt.Errorf("inputs %s and %s both write %s", other, input, target)
		}
		owners[key] = input
	}
	return nil
}

// writeIfChanged writes data to path unless the existing file already holds
// the same bytes, compared by xxh3 fingerprint.
func writeIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(existing) == len(data) && xxh3.Hash(existing) == xxh3.Hash(data) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}

func extensionFor(renderer string) string {
	switch renderer {
	case openapi.Name:
		return ".openapi.json"
	case tui.Name:
		return ".answers.json"
	default:
		return ".json"
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func displayTarget(target string) string {
	if target == "" {
		return "stdout"
	}
	return target
}

func formatFingerprint(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
