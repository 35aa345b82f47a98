// Event table accessors. Events ride the operation's transaction, so a
// rolled-back operation leaves no event behind.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iavl/crossbell/pkg/types"
)

// AppendEvent assigns the next sequence number and records the event within
// the transaction. The assigned Seq is written back into the event.
func (s *Store) AppendEvent(tx *sql.Tx, ev *types.Event) error {
	seq, err := nextCounter(tx, counterEventSeq)
	if err != nil {
		return err
	}
	ev.Seq = seq
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err = tx.Exec(
		`INSERT INTO events (seq, name, caller, profile_id, note_id, linklist_id,
		    category, link_key, nft, token_id, recipient, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Seq, ev.Name, string(ev.Caller), ev.ProfileID, ev.NoteID, ev.LinklistID,
		ev.Category, ev.LinkKey, string(ev.NFT), ev.TokenID, string(ev.To),
		ev.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending event %s: %w", ev.Name, err)
	}
	return nil
}

// EventsSince returns all events with seq greater than sinceSeq, in
// sequence order.
func (s *Store) EventsSince(sinceSeq uint64) ([]types.Event, error) {
	if !s.Attached() {
		return nil, types.ErrDetached
	}
	rows, err := s.db.Query(
		`SELECT seq, name, caller, profile_id, note_id, linklist_id,
		    category, link_key, nft, token_id, recipient, created_at
		 FROM events WHERE seq > ? ORDER BY seq`,
		sinceSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	defer rows.Close()

	events := []types.Event{}
	for rows.Next() {
		ev, err := hydrateEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating event: %w", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// hydrateEvent converts a row from sql.Rows into a *types.Event.
func hydrateEvent(rows *sql.Rows) (*types.Event, error) {
	var ev types.Event
	var caller, nft, recipient sql.NullString
	var category, linkKey sql.NullString
	var profileID, noteID, linklistID, tokenID sql.NullInt64
	var createdAt string
	err := rows.Scan(
		&ev.Seq, &ev.Name, &caller, &profileID, &noteID, &linklistID,
		&category, &linkKey, &nft, &tokenID, &recipient, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	ev.Caller = types.Address(caller.String)
	ev.ProfileID = uint64(profileID.Int64)
	ev.NoteID = uint64(noteID.Int64)
	ev.LinklistID = uint64(linklistID.Int64)
	ev.Category = category.String
	ev.LinkKey = linkKey.String
	ev.NFT = types.Address(nft.String)
	ev.TokenID = uint64(tokenID.Int64)
	ev.To = types.Address(recipient.String)

	ev.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &ev, nil
}
