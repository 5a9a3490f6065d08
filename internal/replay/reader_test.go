package replay

import (
	"strings"
	"testing"
)

func flatLine(v float64) string {
	parts := make([]string, 132)
	for i := range parts {
		parts[i] = "0"
	}
	parts[0] = "1"
	return "[" + strings.Join(parts, ",") + "]"
}

// TestReadFramesArrays verifies bare-array lines parse in order.
func TestReadFramesArrays(t *testing.T) {
	input := "[1,2,3]\n[4,5,6]\n"
	frames, err := ReadFrames(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0][0] != 1 || frames[1][0] != 4 {
		t.Errorf("frames out of order: %v", frames)
	}
}

// TestReadFramesObjects verifies the {"landmarks": [...]} line form.
func TestReadFramesObjects(t *testing.T) {
	input := `{"landmarks":[1,2]}` + "\n" + `{"landmarks":[3,4]}` + "\n"
	frames, err := ReadFrames(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[1][1] != 4 {
		t.Errorf("frames[1] = %v, want [3 4]", frames[1])
	}
}

// TestReadFramesBlankLines verifies blank lines are skipped without
// disturbing frame order.
func TestReadFramesBlankLines(t *testing.T) {
	input := "[1]\n\n[2]\n\n\n[3]\n"
	frames, err := ReadFrames(strings.NewReader(input), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
}

// TestReadFramesStride verifies every stride-th frame is kept, starting with
// the first.
func TestReadFramesStride(t *testing.T) {
	input := "[0]\n[1]\n[2]\n[3]\n[4]\n[5]\n[6]\n"
	frames, err := ReadFrames(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i, want := range []float64{0, 3, 6} {
		if frames[i][0] != want {
			t.Errorf("frames[%d] = %v, want [%v]", i, frames[i], want)
		}
	}
}

// TestReadFramesStrideBelowOne verifies stride 0 behaves like 1.
func TestReadFramesStrideBelowOne(t *testing.T) {
	frames, err := ReadFrames(strings.NewReader("[1]\n[2]\n"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 2 {
		t.Errorf("got %d frames, want 2", len(frames))
	}
}

// TestReadFramesMalformed verifies a bad line fails with its line number.
func TestReadFramesMalformed(t *testing.T) {
	input := "[1,2]\nnot json\n"
	_, err := ReadFrames(strings.NewReader(input), 1)
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want line number", err)
	}
}

// TestReadFramesFullWidth verifies a full 132-value line survives intact.
func TestReadFramesFullWidth(t *testing.T) {
	frames, err := ReadFrames(strings.NewReader(flatLine(1)+"\n"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 1 || len(frames[0]) != 132 {
		t.Fatalf("got %dx%d, want 1x132", len(frames), len(frames[0]))
	}
}
