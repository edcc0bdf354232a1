package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
)

// ReplaceSnapshot persists the snapshot for its date wholesale: the
// previous snapshot (if any) is deleted and the new records and break
// assignments inserted in one transaction. Concurrent re-ingestions of
// the same date must be serialized by the caller.
func (r *Repository) ReplaceSnapshot(snapshot *domain.WorkforceSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM workforce_snapshots WHERE snapshot_date = $1`
	if _, err := tx.ExecContext(ctx, query, snapshot.Date); err != nil {
		return err
	}

	query = `
		INSERT INTO workforce_snapshots (snapshot_date, workforce_size, degraded)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var snapshotID int64
	if err := tx.QueryRowContext(ctx, query, snapshot.Date, snapshot.WorkforceSize, snapshot.Degraded).Scan(&snapshotID); err != nil {
		return err
	}

	breaksByRecord := make(map[int][]int)
	for i := range snapshot.Breaks {
		for j := range snapshot.Records {
			if snapshot.Breaks[i].AgentName == snapshot.Records[j].AgentName &&
				snapshot.Breaks[i].Date == snapshot.Records[j].Date {
				breaksByRecord[j] = append(breaksByRecord[j], i)
				break
			}
		}
	}

	for i := range snapshot.Records {
		rec := &snapshot.Records[i]

		query := `
			INSERT INTO shift_records (snapshot_id, agent_name, supervisor, skill, shift_date, day_kind, start_time, end_time, motive)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, version
		`

		args := []any{snapshotID, rec.AgentName, rec.Supervisor, rec.Skill, rec.Date, rec.DayKind, rec.StartTime, rec.EndTime, rec.Motive}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt, &rec.Version); err != nil {
			return err
		}

		for _, bi := range breaksByRecord[i] {
			b := &snapshot.Breaks[bi]
			b.ShiftRecordID = rec.ID

			query := `
				INSERT INTO break_assignments (shift_record_id, kind, start_time, duration_minutes, overridden)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`

			args := []any{rec.ID, b.Kind, b.Start, b.DurationMinutes, b.Overridden}
			if err := tx.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetSnapshotByDate reassembles the snapshot for a date. Returns
// sql.ErrNoRows when the date has never been ingested.
func (r *Repository) GetSnapshotByDate(date string) (*domain.WorkforceSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			ws.workforce_size,
			ws.degraded,
			sr.id,
			sr.agent_name,
			sr.supervisor,
			sr.skill,
			sr.day_kind,
			sr.start_time,
			sr.end_time,
			sr.motive,
			sr.created_at,
			sr.version,
			ba.id,
			ba.kind,
			ba.start_time,
			ba.duration_minutes,
			ba.overridden
		FROM workforce_snapshots ws
		LEFT JOIN shift_records sr ON ws.id = sr.snapshot_id
		LEFT JOIN break_assignments ba ON sr.id = ba.shift_record_id
		WHERE ws.snapshot_date = $1
		ORDER BY sr.id, ba.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := &domain.WorkforceSnapshot{Date: date}
	seenRecords := make(map[int64]bool)
	found := false

	for rows.Next() {
		found = true

		var row struct {
			workforceSize int
			degraded      bool
			recordID      sql.NullInt64
			agentName     sql.NullString
			supervisor    sql.NullString
			skill         sql.NullString
			dayKind       sql.NullString
			startTime     sql.NullString
			endTime       sql.NullString
			motive        sql.NullString
			createdAt     sql.NullTime
			version       sql.NullInt32
			breakID       sql.NullInt64
			breakKind     sql.NullString
			breakStart    sql.NullString
			breakDuration sql.NullInt32
			overridden    sql.NullBool
		}

		dst := []any{
			&row.workforceSize,
			&row.degraded,
			&row.recordID,
			&row.agentName,
			&row.supervisor,
			&row.skill,
			&row.dayKind,
			&row.startTime,
			&row.endTime,
			&row.motive,
			&row.createdAt,
			&row.version,
			&row.breakID,
			&row.breakKind,
			&row.breakStart,
			&row.breakDuration,
			&row.overridden,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		snapshot.WorkforceSize = row.workforceSize
		snapshot.Degraded = row.degraded

		if !row.recordID.Valid {
			// A snapshot without records should not happen, but an
			// empty join result must not panic either.
			continue
		}

		if !seenRecords[row.recordID.Int64] {
			seenRecords[row.recordID.Int64] = true
			snapshot.Records = append(snapshot.Records, domain.ShiftRecord{
				ID:         row.recordID.Int64,
				AgentName:  row.agentName.String,
				Supervisor: row.supervisor.String,
				Skill:      row.skill.String,
				Date:       date,
				DayKind:    domain.DayKind(row.dayKind.String),
				StartTime:  row.startTime.String,
				EndTime:    row.endTime.String,
				Motive:     row.motive.String,
				CreatedAt:  row.createdAt.Time,
				Version:    row.version.Int32,
			})
		}

		if row.breakID.Valid {
			snapshot.Breaks = append(snapshot.Breaks, domain.BreakAssignment{
				ID:              row.breakID.Int64,
				ShiftRecordID:   row.recordID.Int64,
				AgentName:       row.agentName.String,
				Date:            date,
				Kind:            domain.BreakKind(row.breakKind.String),
				Start:           row.breakStart.String,
				DurationMinutes: int(row.breakDuration.Int32),
				Overridden:      row.overridden.Bool,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return snapshot, nil
}

// OverrideBreak replaces the start time of one agent's break with a
// manual value from the dashboard. The computed value is superseded,
// not recomputed.
func (r *Repository) OverrideBreak(date, agentName string, kind domain.BreakKind, newStart string) (*domain.BreakAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE break_assignments ba
		SET start_time = $1, overridden = TRUE
		FROM shift_records sr, workforce_snapshots ws
		WHERE ba.shift_record_id = sr.id
		  AND sr.snapshot_id = ws.id
		  AND ws.snapshot_date = $2
		  AND sr.agent_name = $3
		  AND ba.kind = $4
		RETURNING ba.id, ba.shift_record_id, ba.start_time, ba.duration_minutes, ba.overridden
	`

	b := &domain.BreakAssignment{
		AgentName: agentName,
		Date:      date,
		Kind:      kind,
	}

	dst := []any{&b.ID, &b.ShiftRecordID, &b.Start, &b.DurationMinutes, &b.Overridden}
	if err := r.dbpool.QueryRowContext(ctx, query, newStart, date, agentName, kind).Scan(dst...); err != nil {
		return nil, err
	}

	return b, nil
}
