package fu

import (
	"go-ml.dev/pkg/iokit"
	"path/filepath"
)

/*
ArtifactPath returns absolute path s unchanged
and resolves relative path into the local cache directory
*/
func ArtifactPath(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "bikeshare", s))
}
