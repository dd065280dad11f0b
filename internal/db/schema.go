package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS records (
    record_id INTEGER PRIMARY KEY AUTOINCREMENT,
    vc_firm TEXT NOT NULL DEFAULT '',
    portfolio_company TEXT NOT NULL DEFAULT '',
    company_url TEXT NOT NULL DEFAULT '',
    industry TEXT NOT NULL DEFAULT '',
    stage TEXT NOT NULL DEFAULT '',
    investment_date TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]', -- JSON array
    source_url TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_records_source_url ON records(source_url);

-- Readable text of company profile pages, one row per normalized URL
CREATE TABLE IF NOT EXISTS documents (
    normalized_url TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    title TEXT,
    content TEXT,
    excerpt TEXT,
    content_hash TEXT,
    content_length INTEGER DEFAULT 0,
    first_scraped INTEGER,
    last_scraped INTEGER,
    scraped_count INTEGER DEFAULT 1
);

CREATE TABLE IF NOT EXISTS crawl_history (
    history_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    url TEXT NOT NULL,
    status TEXT NOT NULL,
    status_code INTEGER,
    records INTEGER DEFAULT 0,
    links INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    timestamp INTEGER,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_crawl_history_run ON crawl_history(run_id, timestamp);

CREATE TABLE IF NOT EXISTS crawl_state (
    run_id TEXT PRIMARY KEY,
    start_urls TEXT NOT NULL DEFAULT '[]', -- JSON array
    total_requests INTEGER DEFAULT 0,
    total_processed INTEGER DEFAULT 0,
    total_records INTEGER DEFAULT 0,
    total_errors INTEGER DEFAULT 0,
    started_at INTEGER,
    finished_at INTEGER
);
`
