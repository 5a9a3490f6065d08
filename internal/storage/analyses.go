package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/armtrack/armtrack/internal/analysis"
	"github.com/armtrack/armtrack/internal/models"
	"github.com/armtrack/armtrack/internal/scoring"
)

const analysisColumns = `id, user_id, video_name, created_at, fps, duration_sec,
	total_frames, processed_frames, total_reps, average_score, max_score, min_score,
	average_angle, score_std, angle_std, consistency, form_quality, reps_per_minute,
	performance_level, badges, frames`

// SaveAnalysis persists an analysis and folds its summary into the user's
// lifetime totals in one transaction. The user's average performance is a
// weighted mean: ((avg * n) + session_avg) / (n + 1) with n the video count
// before this session.
func (db *DB) SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	badges, err := json.Marshal(rec.Summary.Badges)
	if err != nil {
		return fmt.Errorf("encoding badges: %w", err)
	}
	var frames []byte
	if rec.Frames != nil {
		frames, err = json.Marshal(rec.Frames)
		if err != nil {
			return fmt.Errorf("encoding frames: %w", err)
		}
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO analyses (id, user_id, video_name, created_at, fps, duration_sec,
			total_frames, processed_frames, total_reps, average_score, max_score, min_score,
			average_angle, score_std, angle_std, consistency, form_quality, reps_per_minute,
			performance_level, badges, frames)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		rec.ID, rec.UserID, rec.VideoName, rec.CreatedAt, rec.FPS, rec.DurationSec,
		rec.TotalFrames, rec.ProcessedFrames,
		rec.Summary.TotalReps, rec.Summary.AverageScore, rec.Summary.MaxScore, rec.Summary.MinScore,
		rec.Summary.AverageAngle, rec.Summary.ScoreStdDev, rec.Summary.AngleStdDev,
		rec.Summary.Consistency, rec.Summary.FormQuality, rec.Summary.RepsPerMinute,
		rec.Summary.PerformanceLevel, badges, frames)
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET
			total_videos = total_videos + 1,
			total_reps = total_reps + $2,
			average_performance = ((average_performance * total_videos) + $3) / (total_videos + 1),
			last_activity = $4
		WHERE id = $1`,
		rec.UserID, rec.Summary.TotalReps, rec.Summary.AverageScore, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("updating user totals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing tx: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a single analysis, including per-frame results when
// they were stored.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id)
	rec, err := scanAnalysis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying analysis: %w", err)
	}
	return rec, nil
}

// ListUserAnalyses retrieves a user's analyses, newest first. Per-frame
// results are omitted from listings.
func (db *DB) ListUserAnalyses(ctx context.Context, userID uuid.UUID, limit int) ([]*models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var result []*models.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		rec.Frames = nil
		result = append(result, rec)
	}
	return result, rows.Err()
}

// ScoreHistory returns a user's average scores in chronological order, the
// series the improvement calculation runs over.
func (db *DB) ScoreHistory(ctx context.Context, userID uuid.UUID) ([]float64, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT average_score FROM analyses
		 WHERE user_id = $1
		 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying score history: %w", err)
	}
	defer rows.Close()

	var history []float64
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning score: %w", err)
		}
		history = append(history, s)
	}
	return history, rows.Err()
}

func scanAnalysis(row pgx.Row) (*models.AnalysisRecord, error) {
	rec := &models.AnalysisRecord{}
	var badges, frames []byte
	err := row.Scan(&rec.ID, &rec.UserID, &rec.VideoName, &rec.CreatedAt,
		&rec.FPS, &rec.DurationSec, &rec.TotalFrames, &rec.ProcessedFrames,
		&rec.Summary.TotalReps, &rec.Summary.AverageScore, &rec.Summary.MaxScore,
		&rec.Summary.MinScore, &rec.Summary.AverageAngle, &rec.Summary.ScoreStdDev,
		&rec.Summary.AngleStdDev, &rec.Summary.Consistency, &rec.Summary.FormQuality,
		&rec.Summary.RepsPerMinute, &rec.Summary.PerformanceLevel, &badges, &frames)
	if err != nil {
		return nil, err
	}
	rec.Summary.Badges = []analysis.Badge{}
	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &rec.Summary.Badges); err != nil {
			return nil, fmt.Errorf("decoding badges: %w", err)
		}
	}
	if len(frames) > 0 {
		var fr []scoring.FrameResult
		if err := json.Unmarshal(frames, &fr); err != nil {
			return nil, fmt.Errorf("decoding frames: %w", err)
		}
		rec.Frames = fr
	}
	return rec, nil
}
