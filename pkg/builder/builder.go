// Package builder writes the generated site into a staging directory and
// swaps it into place only when the whole build has succeeded, so a failed
// build never leaves a half-written output directory behind.
package builder

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Builder renders pages and copies assets into a staging directory.
type Builder struct {
	outputDir  string
	stagingDir string
	tmpl       *template.Template
	logger     *zap.Logger
	committed  bool
}

// New creates a Builder targeting outputDir, parsing every *.gohtml template
// under templateDir. The staging directory lives next to outputDir so the
// final rename stays on one filesystem.
func New(outputDir, templateDir string, logger *zap.Logger) (*Builder, error) {
	parent := filepath.Dir(filepath.Clean(outputDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output parent directory: %w", err)
	}

	stagingDir, err := os.MkdirTemp(parent, ".choreworld-build-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"urlPath": URLPath,
	}).ParseGlob(filepath.Join(templateDir, "*.gohtml"))
	if err != nil {
		os.RemoveAll(stagingDir)
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Builder{
		outputDir:  outputDir,
		stagingDir: stagingDir,
		tmpl:       tmpl,
		logger:     logger,
	}, nil
}

// URLPath normalizes a site path to a single leading slash.
func URLPath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}

// RenderPage renders the named template to <path>/index.html in the staging
// directory.
func (b *Builder) RenderPage(templateName, path string, data any) error {
	destDir := filepath.Join(b.stagingDir, strings.TrimLeft(path, "/"))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create page directory %s: %w", path, err)
	}

	destFile := filepath.Join(destDir, "index.html")
	f, err := os.Create(destFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destFile, err)
	}
	defer f.Close()

	if err := b.tmpl.ExecuteTemplate(f, templateName, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", templateName, err)
	}

	b.logger.Debug("Rendered page", zap.String("template", templateName), zap.String("path", path))
	return nil
}

// CopyDir copies a source directory tree into the staging directory at
// destPath.
func (b *Builder) CopyDir(srcDir, destPath string) error {
	dest := filepath.Join(b.stagingDir, strings.TrimLeft(destPath, "/"))
	if err := os.CopyFS(dest, os.DirFS(srcDir)); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", srcDir, destPath, err)
	}

	b.logger.Debug("Copied directory", zap.String("src", srcDir), zap.String("dest", destPath))
	return nil
}

// WriteFile writes a plain file (CNAME, .nojekyll) into the staging
// directory.
func (b *Builder) WriteFile(path string, data []byte) error {
	dest := filepath.Join(b.stagingDir, strings.TrimLeft(path, "/"))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Commit replaces the output directory with the staging directory.
func (b *Builder) Commit() error {
	if err := os.RemoveAll(b.outputDir); err != nil {
		return fmt.Errorf("failed to remove old output directory: %w", err)
	}
	if err := os.Rename(b.stagingDir, b.outputDir); err != nil {
		return fmt.Errorf("failed to publish staging directory: %w", err)
	}

	b.committed = true
	b.logger.Info("Published site", zap.String("output_dir", b.outputDir))
	return nil
}

// Close removes the staging directory if the build was never committed.
func (b *Builder) Close() error {
	if b.committed {
		return nil
	}
	return os.RemoveAll(b.stagingDir)
}
