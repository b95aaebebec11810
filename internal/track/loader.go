package track

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"raceline-editor/internal/common"
)

// Load reads a road network from path. Files ending in .geojson or .json are
// read as GeoJSON; anything else is treated as a Lanelet2 OSM map.
func Load(path string) (*Network, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &common.LoadError{Path: path, Err: err}
	}
	defer file.Close()

	var net *Network
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		net, err = LoadGeoJSON(file)
	default:
		net, err = LoadOSM(file)
	}
	if err != nil {
		return nil, common.WithPath(err, path)
	}
	return net, nil
}

func loadErr(format string, args ...any) error {
	return &common.LoadError{Err: fmt.Errorf(format, args...)}
}
