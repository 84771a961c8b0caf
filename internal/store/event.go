package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// eventRepo implements EventRepo with plain SQL. The autoincrement
// sequence column gives a total order within each table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendAPIRequest(ctx context.Context, data APIRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_events
			(event_id, timestamp, endpoint, page_type, participant_id, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), nowUTC(), data.Endpoint, data.PageType, data.ParticipantID,
		data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save api request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAPIRequests(ctx context.Context, opts QueryOpts) ([]APIRequestEventRecord, error) {
	where, args := opts.clauses()
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, event_id, timestamp, endpoint, page_type, participant_id, latency_ms, success, error_message
		 FROM api_events`+where+` ORDER BY sequence DESC`+opts.limit(),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query api request events: %w", err)
	}
	defer rows.Close()

	var out []APIRequestEventRecord
	for rows.Next() {
		var rec APIRequestEventRecord
		var ts string
		if err := rows.Scan(&rec.Sequence, &rec.EventID, &ts, &rec.Endpoint, &rec.PageType,
			&rec.ParticipantID, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan api request event: %w", err)
		}
		rec.Timestamp = parseTime(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendQuestEvent(ctx context.Context, data QuestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quest_events
			(event_id, timestamp, participant_id, visit_id, quest_id, source, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), nowUTC(), data.ParticipantID, data.VisitID, data.QuestID,
		data.Source, data.Completed,
	)
	if err != nil {
		return fmt.Errorf("save quest event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuestEvents(ctx context.Context, participantID string, opts QueryOpts) ([]QuestEventRecord, error) {
	where, args := opts.clauses()
	if where == "" {
		where = " WHERE participant_id = ?"
	} else {
		where += " AND participant_id = ?"
	}
	args = append(args, participantID)

	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, event_id, timestamp, participant_id, visit_id, quest_id, source, completed
		 FROM quest_events`+where+` ORDER BY sequence DESC`+opts.limit(),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query quest events: %w", err)
	}
	defer rows.Close()

	var out []QuestEventRecord
	for rows.Next() {
		var rec QuestEventRecord
		var ts string
		if err := rows.Scan(&rec.Sequence, &rec.EventID, &ts, &rec.ParticipantID,
			&rec.VisitID, &rec.QuestID, &rec.Source, &rec.Completed); err != nil {
			return nil, fmt.Errorf("scan quest event: %w", err)
		}
		rec.Timestamp = parseTime(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// clauses renders the sequence and time filters as a WHERE clause.
func (o QueryOpts) clauses() (string, []any) {
	var conds []string
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UTC().Format(timeLayout))
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UTC().Format(timeLayout))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", o.Limit)
}

// timeLayout has fixed width so stored timestamps compare lexically.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
