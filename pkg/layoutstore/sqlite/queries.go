package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type WindowLayout struct {
	Hwnd     int64
	Layout   int64
	ThreadID int64
}

const getWindowLayout = `select hwnd, layout, thread_id from window_layouts where hwnd = ?`

func (q *Queries) GetWindowLayout(ctx context.Context, hwnd int64) (WindowLayout, error) {
	row := q.db.QueryRowContext(ctx, getWindowLayout, hwnd)
	var i WindowLayout
	err := row.Scan(&i.Hwnd, &i.Layout, &i.ThreadID)
	return i, err
}

const setWindowLayout = `insert into window_layouts (hwnd, layout, thread_id)
values (?, ?, ?)
on conflict (hwnd) do update set layout     = excluded.layout,
                                 thread_id  = excluded.thread_id,
                                 updated_at = current_timestamp`

type SetWindowLayoutParams struct {
	Hwnd     int64
	Layout   int64
	ThreadID int64
}

func (q *Queries) SetWindowLayout(ctx context.Context, arg SetWindowLayoutParams) error {
	_, err := q.db.ExecContext(ctx, setWindowLayout, arg.Hwnd, arg.Layout, arg.ThreadID)
	return err
}

const forgetWindow = `delete from window_layouts where hwnd = ?`

func (q *Queries) ForgetWindow(ctx context.Context, hwnd int64) error {
	_, err := q.db.ExecContext(ctx, forgetWindow, hwnd)
	return err
}

const listWindows = `select hwnd from window_layouts order by hwnd`

func (q *Queries) ListWindows(ctx context.Context) ([]int64, error) {
	return q.queryInt64s(ctx, listWindows)
}

const dumpTables = `select sql from sqlite_master
where type = 'table' and name not like 'sqlite_%'
order by name`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.queryStrings(ctx, dumpTables)
}

const dumpRest = `select sql from sqlite_master
where type != 'table' and name not like 'sqlite_%'
order by name`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.queryStrings(ctx, dumpRest)
}

func (q *Queries) queryInt64s(ctx context.Context, query string) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []int64
	for rows.Next() {
		var i int64
		if err := rows.Scan(&i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (q *Queries) queryStrings(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		if !s.Valid {
			items = append(items, nil)
			continue
		}
		items = append(items, &s.String)
	}
	return items, rows.Err()
}
