package process

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"docxfix/config"
)

// buildOutputPath returns destination for normalized document. Explicit
// destination wins unless it is an existing directory, in which case default
// file name is placed there. Default name is source base name with prefix
// added, optionally transliterated and cleaned up, next to the source. Source
// extension is kept as is, including when there is none.
func buildOutputPath(src, dst string, cfg *config.OutputConfig) string {
	outDir := filepath.Dir(src)
	if len(dst) > 0 {
		fi, err := os.Stat(dst)
		if err != nil || !fi.IsDir() {
			return dst
		}
		outDir = dst
	}
	return filepath.Join(outDir, buildDefaultFileName(src, cfg))
}

func buildDefaultFileName(src string, cfg *config.OutputConfig) string {
	ext := filepath.Ext(src)
	baseName := strings.TrimSuffix(filepath.Base(src), ext)
	if cfg.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(cfg.NamePrefix+baseName) + ext
}
