// Package levels embeds the bundled world files.
package levels

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the world a new game starts in.
const Default = "tutorial"

// Dir is where world files live on disk, relative to the working directory.
const Dir = "levels"

// Names lists the embedded worlds without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
