package storage

import "context"

// GetOrCreateUser finds or creates a user by Tailscale login name and
// returns the user ID. Refreshes last_seen and display_name on each call,
// so the users table doubles as a last-activity record per tailnet identity.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	return id, err
}
