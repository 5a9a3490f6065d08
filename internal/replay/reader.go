// Package replay runs the scoring engine over landmark frames recorded to
// disk, for offline analysis without the server.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// frameLine is the object form of a recorded frame. The bare-array form is a
// JSON array of the same 132 values.
type frameLine struct {
	Landmarks []float64 `json:"landmarks"`
}

// ReadFrames parses a JSONL stream of landmark frames: one frame per line,
// either a flat array of 132 floats or an object with a "landmarks" field.
// Blank lines are skipped. With stride > 1 only every stride-th frame is
// kept, matching capture pipelines that sample the video sparsely.
func ReadFrames(r io.Reader, stride int) ([][]float64, error) {
	if stride < 1 {
		stride = 1
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var frames [][]float64
	lineNo := 0
	frameNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var flat []float64
		if line[0] == '{' {
			var obj frameLine
			if err := json.Unmarshal(line, &obj); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			flat = obj.Landmarks
		} else {
			if err := json.Unmarshal(line, &flat); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}

		if frameNo%stride == 0 {
			frames = append(frames, flat)
		}
		frameNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading frames: %w", err)
	}
	return frames, nil
}
