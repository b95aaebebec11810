package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"raceline-editor/internal/common"
	"raceline-editor/internal/persist"
	"raceline-editor/internal/raceline"
	"raceline-editor/internal/track"
)

// Writes an oval test track: a Lanelet2 map with inner and outer boundaries
// and a racing line along the centre, in the Autoware CSV layout.
func main() {
	outDir := flag.String("out", "sample", "output directory")
	radiusX := flag.Float64("radius-x", 300, "centre-line semi-axis along x (m)")
	radiusY := flag.Float64("radius-y", 200, "centre-line semi-axis along y (m)")
	trackWidth := flag.Float64("width", 50, "track width (m)")
	samples := flag.Int("points", 120, "points per boundary and racing line")
	speed := flag.Float64("speed", 8.333, "speed column value (m/s)")
	flag.Parse()

	if *samples < 3 || *trackWidth <= 0 || *trackWidth/2 >= math.Min(*radiusX, *radiusY) {
		fmt.Fprintln(os.Stderr, "gen-track: need at least 3 points and a width narrower than the oval")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	half := *trackWidth / 2
	outer := ellipse(*radiusX+half, *radiusY+half, *samples)
	inner := ellipse(*radiusX-half, *radiusY-half, *samples)
	centre := ellipse(*radiusX, *radiusY, *samples)

	mapPath := filepath.Join(*outDir, "lanelet2_map.osm")
	f, err := os.Create(mapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = track.EncodeOSM(f, []track.BoundaryWay{{Points: outer}, {Points: inner}})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	table, err := racingLine(centre[:len(centre)-1], *speed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	csvPath := filepath.Join(*outDir, "raceline_awsim_30km.csv")
	if err := persist.WriteFile(csvPath, table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s\n", mapPath, csvPath)
}

// ellipse samples a closed ellipse counter-clockwise; the last point repeats
// the first.
func ellipse(a, b float64, n int) []common.Vec2 {
	pts := make([]common.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		t := 2 * math.Pi * float64(i%n) / float64(n)
		pts = append(pts, common.Vec2{X: a * math.Cos(t), Y: b * math.Sin(t)})
	}
	return pts
}

// racingLine builds the CSV table with a heading quaternion (yaw only)
// pointing at the next point.
func racingLine(pts []common.Vec2, speed float64) (*raceline.Table, error) {
	header := []string{"x", "y", "z", "x_quat", "y_quat", "z_quat", "w_quat", "speed"}
	rows := make([][]string, 0, len(pts))
	for i, p := range pts {
		next := pts[(i+1)%len(pts)]
		d := next.Sub(p)
		yaw := math.Atan2(d.Y, d.X)
		rows = append(rows, []string{
			format(p.X), format(p.Y), "0.0",
			"0.0", "0.0", format(math.Sin(yaw / 2)), format(math.Cos(yaw / 2)),
			format(speed),
		})
	}
	return raceline.NewTable(header, rows)
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
