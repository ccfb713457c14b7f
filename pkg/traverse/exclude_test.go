package traverse

import "testing"

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"NoPatterns", "a.txt", nil, false},
		{"EmptyPattern", "a.txt", []string{""}, false},
		{"BaseGlob", "dir/a.tmp", []string{"*.tmp"}, true},
		{"BaseGlobNoMatch", "dir/a.txt", []string{"*.tmp"}, false},
		{"DirPatternTop", ".git/config", []string{".git/"}, true},
		{"DirPatternNested", "src/.git/HEAD", []string{".git/"}, true},
		{"DirPatternPrefixOnly", ".github/workflow.yml", []string{".git/"}, false},
		{"PathPattern", "build/out.bin", []string{"build/*"}, true},
		{"PathPatternNested", "a/build/out.bin", []string{"build/*"}, false},
		{"AnyDepth", "a/b/cache/x", []string{"**/cache/*"}, true},
		{"AnyDepthBase", "a/b/x.log", []string{"**/*.log"}, true},
		{"AnyDepthNoMatch", "a/b/x.txt", []string{"**/*.log"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldExclude(tt.path, tt.patterns); got != tt.want {
				t.Errorf("shouldExclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
			}
		})
	}
}

func TestIsExcludedDir(t *testing.T) {
	patterns := []string{"node_modules/", "*.tmp"}

	if !isExcludedDir("node_modules", patterns) {
		t.Error("node_modules should be skipped as a whole")
	}
	if !isExcludedDir("web/node_modules", patterns) {
		t.Error("nested node_modules should be skipped as a whole")
	}
	if isExcludedDir("src", patterns) {
		t.Error("src should not be skipped")
	}
}
