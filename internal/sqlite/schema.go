// Package sqlite implements the SQLite storage backend for the crossbell
// ledger. SQLite is the query engine; JSONL files in the data directory are
// the source of truth, loaded on Attach and rewritten after each committed
// mutation.
package sqlite

// Schema DDL for all tables.
const (
	createProfiles = `CREATE TABLE profiles (
    profile_id INTEGER PRIMARY KEY,
    owner TEXT NOT NULL,
    handle TEXT NOT NULL,
    uri TEXT,
    next_note_id INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createLinklists = `CREATE TABLE linklists (
    linklist_id INTEGER PRIMARY KEY,
    profile_id INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (profile_id) REFERENCES profiles(profile_id)
);`

	createLinklistItems = `CREATE TABLE linklist_items (
    linklist_id INTEGER NOT NULL,
    category TEXT NOT NULL,
    position INTEGER NOT NULL,
    item_key TEXT NOT NULL,
    item TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (linklist_id, category, item_key),
    FOREIGN KEY (linklist_id) REFERENCES linklists(linklist_id)
);`

	createNotes = `CREATE TABLE notes (
    profile_id INTEGER NOT NULL,
    note_id INTEGER NOT NULL,
    link_item_type TEXT NOT NULL,
    linklist_id INTEGER NOT NULL,
    link_key TEXT NOT NULL,
    content_uri TEXT NOT NULL,
    link_module TEXT NOT NULL,
    link_module_data TEXT NOT NULL,
    mint_module TEXT NOT NULL,
    mint_module_data TEXT NOT NULL,
    mint_nft TEXT NOT NULL,
    deleted INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (profile_id, note_id),
    FOREIGN KEY (profile_id) REFERENCES profiles(profile_id)
);`

	createMintNFTs = `CREATE TABLE mint_nfts (
    address TEXT PRIMARY KEY,
    profile_id INTEGER NOT NULL,
    note_id INTEGER NOT NULL,
    next_token_id INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createMintTokens = `CREATE TABLE mint_tokens (
    address TEXT NOT NULL,
    token_id INTEGER NOT NULL,
    owner TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (address, token_id),
    FOREIGN KEY (address) REFERENCES mint_nfts(address)
);`

	createEvents = `CREATE TABLE events (
    seq INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    caller TEXT,
    profile_id INTEGER,
    note_id INTEGER,
    linklist_id INTEGER,
    category TEXT,
    link_key TEXT,
    nft TEXT,
    token_id INTEGER,
    recipient TEXT,
    created_at TEXT NOT NULL
);`

	createCounters = `CREATE TABLE counters (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxLinklistsProfile  = `CREATE UNIQUE INDEX idx_linklists_profile ON linklists(profile_id);`
	idxItemsListCategory = `CREATE INDEX idx_items_list_category ON linklist_items(linklist_id, category, position);`
	idxNotesProfile      = `CREATE INDEX idx_notes_profile ON notes(profile_id);`
	idxMintNFTsNote      = `CREATE UNIQUE INDEX idx_mint_nfts_note ON mint_nfts(profile_id, note_id);`
	idxEventsName        = `CREATE INDEX idx_events_name ON events(name);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createProfiles,
	createLinklists,
	createLinklistItems,
	createNotes,
	createMintNFTs,
	createMintTokens,
	createEvents,
	createCounters,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLinklistsProfile,
	idxItemsListCategory,
	idxNotesProfile,
	idxMintNFTsNote,
	idxEventsName,
}
