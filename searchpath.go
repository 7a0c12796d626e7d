/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package texfigure

import "sync"

// SearchPath is an ordered list of directories holding document-local code.
// Managers append their code directory to it; nothing process-wide is touched.
type SearchPath struct {
	mu   sync.RWMutex
	dirs []string
}

// NewSearchPath creates a search path seeded with dirs.
func NewSearchPath(dirs ...string) *SearchPath {
	return &SearchPath{dirs: append([]string(nil), dirs...)}
}

// Append adds dir to the end of the path.
func (sp *SearchPath) Append(dir string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.dirs = append(sp.dirs, dir)
}

// Dirs returns a copy of the path.
func (sp *SearchPath) Dirs() []string {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return append([]string(nil), sp.dirs...)
}

// Contains reports whether dir is on the path.
func (sp *SearchPath) Contains(dir string) bool {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	for _, d := range sp.dirs {
		if d == dir {
			return true
		}
	}
	return false
}
