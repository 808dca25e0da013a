package store

// schemaVersion is the target schema version for this build.
const schemaVersion = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	created_at       TEXT NOT NULL,
	influencer_a     TEXT NOT NULL,
	influencer_b     TEXT NOT NULL,
	semantics        TEXT NOT NULL,
	follower_shared  INTEGER NOT NULL,
	follower_count_a INTEGER NOT NULL,
	follower_count_b INTEGER NOT NULL,
	follower_value   REAL NOT NULL,
	engager_shared   INTEGER NOT NULL,
	engager_count_a  INTEGER NOT NULL,
	engager_count_b  INTEGER NOT NULL,
	engager_value    REAL NOT NULL,
	regression_input TEXT NOT NULL,
	network_ids      INTEGER NOT NULL,
	engagement_ids   INTEGER NOT NULL,
	model_n          INTEGER,
	model_intercept  REAL,
	model_slope      REAL,
	model_r2         REAL,
	model_adj_r2     REAL,
	model_p_slope    REAL,
	model_f          REAL,
	model_p_f        REAL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

CREATE TABLE IF NOT EXISTS pair_overlaps (
	run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq          INTEGER NOT NULL,
	influencer_a TEXT NOT NULL,
	influencer_b TEXT NOT NULL,
	network      INTEGER NOT NULL,
	engagement   INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`
