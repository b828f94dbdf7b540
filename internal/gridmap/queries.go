package gridmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/navgrid/internal/pathfind"
)

// QueryFile is a batch of path queries against one map.
//
//	queries:
//	  - start: {x: 0, y: 0}
//	    goal: {x: 9, y: 4}
//	    optimize: true
type QueryFile struct {
	Queries []pathfind.Query `yaml:"queries"`
}

// LoadQueries reads a query file.
func LoadQueries(path string) ([]pathfind.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading queries %s: %w", path, err)
	}
	var f QueryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing queries %s: %w", path, err)
	}
	return f.Queries, nil
}
