package mop

import (
	"fmt"
	"path"
	"strings"

	"github.com/tesserabio/tessera/pkg/api/types/attributes"
)

// CanDelete reports whether an unreferenced bucket object may be removed.
//
// Logs, return codes, task scripts and stdout/stderr stay, always. When
// include globs are given, exactly the basenames matching one of them go
// and exclude globs are ignored; otherwise everything goes except basenames
// matching an exclude glob. Globs match in fnmatch style, case sensitively.
func CanDelete(objectName string, include, exclude []string) bool {
	filename := objectName[strings.LastIndex(objectName, "/")+1:]

	if strings.HasSuffix(filename, ".log") {
		return false
	}
	if strings.HasSuffix(filename, "-rc.txt") {
		return false
	}
	if filename == "rc" {
		return false
	}
	if filename == "exec.sh" || filename == "script" {
		return false
	}
	if filename == "stderr" || filename == "stdout" || filename == "output" {
		return false
	}

	if 0 < len(include) {
		for _, glob := range include {
			if ok, _ := path.Match(glob, filename); ok {
				return true
			}
		}
		return false
	}
	for _, glob := range exclude {
		if ok, _ := path.Match(glob, filename); ok {
			return false
		}
	}
	return true
}

// CollectReferences adds every gs:// URL found in the attribute values to
// referenced. Values may be scalars, lists, maps and nestings thereof.
func CollectReferences(referenced map[string]bool, attrs map[string]any) {
	for _, value := range attrs {
		attributes.WalkStrings(value, func(s string) {
			if strings.HasPrefix(s, "gs://") {
				referenced[s] = true
			}
		})
	}
}

var sizeUnits = []string{"bytes", "KiB", "MiB", "GiB", "TiB", "PiB"}

// HumanReadableSize renders a byte count with an appropriate unit.
func HumanReadableSize(sizeInBytes int64) string {
	size := float64(sizeInBytes)
	reduceCount := 0
	for 1024.0 <= size && reduceCount < len(sizeUnits)-1 {
		size /= 1024.0
		reduceCount += 1
	}
	if reduceCount == 0 {
		return fmt.Sprintf("%d %s", sizeInBytes, sizeUnits[0])
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[reduceCount])
}
