package traverse

import (
	"path"
	"path/filepath"
	"strings"
)

// shouldExclude checks if a file path should be excluded based on the given patterns
// Patterns support:
//   - Simple glob patterns on the base name: *.tmp, *.log
//   - Directory patterns: .git/, node_modules/
//   - Path patterns: build/*
//   - Any-depth patterns: **/cache/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	p := filepath.ToSlash(relativePath)
	base := path.Base(p)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		switch {
		case pattern == "":
			continue

		case strings.HasSuffix(pattern, "/"):
			if underDir(p, strings.TrimSuffix(pattern, "/")) {
				return true
			}

		case strings.HasPrefix(pattern, "**/"):
			suffix := strings.TrimPrefix(pattern, "**/")
			if globMatch(suffix, base) || matchAnySuffix(p, suffix) {
				return true
			}

		case strings.Contains(pattern, "/"):
			if globMatch(pattern, p) || strings.HasSuffix(p, "/"+pattern) {
				return true
			}

		default:
			if globMatch(pattern, base) {
				return true
			}
		}
	}

	return false
}

// isExcludedDir reports whether a directory is excluded as a whole by a
// directory pattern, so the walk can skip its contents
func isExcludedDir(relativePath string, patterns []string) bool {
	p := filepath.ToSlash(relativePath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if strings.HasSuffix(pattern, "/") && underDir(p+"/x", strings.TrimSuffix(pattern, "/")) {
			return true
		}
	}
	return false
}

// underDir reports whether p lies below a directory named dir at any depth
func underDir(p, dir string) bool {
	if dir == "" {
		return false
	}
	return strings.HasPrefix(p, dir+"/") || strings.Contains(p, "/"+dir+"/")
}

// matchAnySuffix matches pattern against every trailing sub-path of p
func matchAnySuffix(p, pattern string) bool {
	for {
		if globMatch(pattern, p) {
			return true
		}
		i := strings.Index(p, "/")
		if i < 0 {
			return false
		}
		p = p[i+1:]
	}
}

func globMatch(pattern, name string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}
