package main

import (
	"context"
	"database/sql"

	"github.com/kherring/docbrief/llm"
	"github.com/kherring/docbrief/sqlite"
)

type Summary struct {
	Url     string
	Title   string
	Summary string
	Model   string
}

type Repo struct {
	db *sql.DB
}

func NewRepo(dbfile string) (Repo, error) {
	db, err := sqlite.NewFromFile(dbfile, schema)
	if err != nil {
		return Repo{}, err
	}

	return Repo{db}, nil
}

func NewTestRepo() (Repo, error) {
	db, err := sqlite.NewFromMemory(schema)
	if err != nil {
		return Repo{}, err
	}

	return Repo{db}, err
}

func (repo *Repo) Close() {
	repo.db.Close()
}

// Returns the cached summary for a url if one exists
func (repo *Repo) Get(ctx context.Context, url string) (Summary, bool) {
	row := repo.db.QueryRowContext(ctx, "SELECT title, summary, model FROM summaries WHERE url = ?", url)
	s := Summary{Url: url}
	err := row.Scan(&s.Title, &s.Summary, &s.Model)
	if err != nil {
		return s, false
	}
	_, _ = repo.db.Exec("UPDATE summaries SET lastAccess = datetime('now') WHERE url = ?", url)
	return s, true
}

// Insert the summary for a url, replacing any previous one
func (repo *Repo) Insert(ctx context.Context, s Summary) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO summaries (url, title, summary, model) VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
		  title = excluded.title,
		  summary = excluded.summary,
		  model = excluded.model,
		  lastAccess = datetime('now')`,
		s.Url, s.Title, s.Summary, s.Model)
	return err
}

func (repo *Repo) RecordUsage(ctx context.Context, url string, model string, usage llm.Usage) error {
	_, err := repo.db.ExecContext(ctx,
		"INSERT INTO usage (url, model, tokensIn, tokensOut) VALUES (?, ?, ?, ?)",
		url, model, usage.InputTokens, usage.OutputTokens)
	return err
}

// Returns the most recently-touched summaries, newest first
func (repo *Repo) Recent(ctx context.Context, count int) ([]Summary, error) {
	rows, err := repo.db.QueryContext(ctx,
		"SELECT url, title, summary, model FROM summaries ORDER BY lastAccess DESC LIMIT ?", count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Summary

	for rows.Next() {
		var s Summary
		err := rows.Scan(&s.Url, &s.Title, &s.Summary, &s.Model)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
