package main

var schema = []string{
	// version 1
	`
CREATE TABLE metadata (
  id integer primary key,
  schemaVersion integer
);

CREATE TABLE IF NOT EXISTS summaries (
  url text primary key,
  title text,
  summary text,
  model text,
  created datetime default current_timestamp,
  lastAccess datetime default current_timestamp
);

CREATE TABLE IF NOT EXISTS usage (
  timestamp datetime default current_timestamp,
  url text,
  model text,
  tokensIn integer,
  tokensOut integer
);
	`,
}
