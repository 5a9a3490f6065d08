package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/armtrack/armtrack/internal/storage"
)

// handleAnalysisChart renders an HTML line chart of the per-frame score and
// elbow angle series. Only available for analyses stored with frame results.
func (s *Server) handleAnalysisChart(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := s.db.GetAnalysis(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(rec.Frames) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no frame results stored for this analysis"})
		return
	}

	x := make([]string, 0, len(rec.Frames))
	scores := make([]opts.LineData, 0, len(rec.Frames))
	angles := make([]opts.LineData, 0, len(rec.Frames))
	for _, f := range rec.Frames {
		x = append(x, strconv.Itoa(f.FrameIndex))
		scores = append(scores, opts.LineData{Value: f.Score})
		angles = append(angles, opts.LineData{Value: f.Angle})
	}

	subtitle := fmt.Sprintf("reps=%d avg=%.1f level=%s frames=%d",
		rec.Summary.TotalReps, rec.Summary.AverageScore,
		rec.Summary.PerformanceLevel, len(rec.Frames))

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Session " + rec.ID.String(), Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Posture Score / Elbow Angle", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "value", Max: 180}),
	)
	line.SetXAxis(x).
		AddSeries("score", scores).
		AddSeries("angle (deg)", angles)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("failed to render chart: %v", err)})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
