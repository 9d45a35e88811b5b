package parser

import (
	"io/fs"
	"path"
	"strings"

	"github.com/LuanaSouza24/laudo-service/internal/logger"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
)

// PhotoFolders are probed, in order, when a photo reference does not resolve
// as given: property, ambient, report and site photos.
var PhotoFolders = []string{
	"Fotos_imovel_Images",
	"Foto_ambiente_Images",
	"RFoto_Images",
	"Fotos_canteiro_Images",
}

// ImageResolver maps "Foto" cells to files inside the report working directory.
type ImageResolver struct {
	// FS is rooted at the working directory.
	FS fs.FS
	// Folders overrides PhotoFolders when non-nil.
	Folders []string
	// Log receives a warning for every unresolved reference.
	Log *logger.Logger
}

// NewImageResolver returns a resolver over fsys.
func NewImageResolver(fsys fs.FS, log *logger.Logger) *ImageResolver {
	return &ImageResolver{FS: fsys, Log: log}
}

// Resolve returns the FS path of a photo reference. The reference is tried as
// a relative path first, then its bare file name is looked up in each photo
// folder. ok is false when nothing exists.
func (r *ImageResolver) Resolve(ref string) (string, bool) {
	s := models.Coerce(ref)
	if s == "" || r == nil || r.FS == nil {
		return "", false
	}

	rel := path.Clean(strings.ReplaceAll(s, "\\", "/"))
	if r.exists(rel) {
		return rel, true
	}

	folders := r.Folders
	if folders == nil {
		folders = PhotoFolders
	}
	filename := path.Base(rel)
	for _, folder := range folders {
		candidate := path.Join(folder, filename)
		if r.exists(candidate) {
			return candidate, true
		}
	}

	r.Log.Warn("Images", "Image not found: %s", ref)
	return "", false
}

func (r *ImageResolver) exists(name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(r.FS, name)
	return err == nil && !info.IsDir()
}
