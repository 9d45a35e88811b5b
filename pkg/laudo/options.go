// Package laudo generates inspection reports from a multi-sheet workbook and
// a Word template.
package laudo

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/LuanaSouza24/laudo-service/internal/logger"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/figures"
)

// Default file names inside the working directory.
const (
	DefaultTemplateName = "template.docx"
	DefaultOutputDir    = "saida"
)

// Options configures one report generation.
type Options struct {
	// WorkDir holds the photo folders, and the template and output
	// directory unless they are set explicitly.
	WorkDir string
	// Photos overrides the photo source derived from WorkDir.
	Photos fs.FS
	// TemplatePath defaults to WorkDir/template.docx.
	TemplatePath string
	// OutputDir defaults to WorkDir/saida.
	OutputDir string
	// StartFigure is the first automatic figure number. Zero means
	// figures.DefaultStart.
	StartFigure int
	// Captions defaults to figures.Portuguese.
	Captions figures.Captions
	// Logger may be nil.
	Logger *logger.Logger
}

// DefaultOptions returns options rooted at the current directory.
func DefaultOptions() Options {
	return Options{
		WorkDir:     ".",
		StartFigure: figures.DefaultStart,
		Captions:    figures.Portuguese,
	}
}

// Template returns the template path.
func (o Options) Template() string {
	if o.TemplatePath != "" {
		return o.TemplatePath
	}
	return filepath.Join(o.WorkDir, DefaultTemplateName)
}

// Output returns the output directory.
func (o Options) Output() string {
	if o.OutputDir != "" {
		return o.OutputDir
	}
	return filepath.Join(o.WorkDir, DefaultOutputDir)
}

// Start returns the first figure number.
func (o Options) Start() int {
	if o.StartFigure > 0 {
		return o.StartFigure
	}
	return figures.DefaultStart
}

// CaptionSet returns the caption vocabulary.
func (o Options) CaptionSet() figures.Captions {
	if o.Captions == (figures.Captions{}) {
		return figures.Portuguese
	}
	return o.Captions
}

// PhotoFS returns the file system photos are resolved and read from.
func (o Options) PhotoFS() fs.FS {
	if o.Photos != nil {
		return o.Photos
	}
	dir := o.WorkDir
	if dir == "" {
		dir = "."
	}
	return os.DirFS(dir)
}
