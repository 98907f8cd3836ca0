package db

import (
	"context"
	"fmt"
	"time"
)

type Group struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DiscordGuildID *int64 `json:"discord_guild_id,omitempty"`
}

type GroupMember struct {
	GroupID     int64  `json:"group_id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

type Invite struct {
	Code      string    `json:"code"`
	GroupID   int64     `json:"group_id"`
	CreatedBy string    `json:"created_by"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (db *DB) CreateGroup(ctx context.Context, name string, discordGuildID *int64) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		"INSERT INTO groups (name, discord_guild_id) VALUES ($1, $2) RETURNING id",
		name, discordGuildID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) GetGroup(ctx context.Context, groupID int64) (*Group, error) {
	var g Group
	err := db.pool.QueryRow(ctx,
		"SELECT id, name, discord_guild_id FROM groups WHERE id = $1",
		groupID,
	).Scan(&g.ID, &g.Name, &g.DiscordGuildID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGroupByGuildID finds the group linked to a Discord guild, if any.
func (db *DB) GetGroupByGuildID(ctx context.Context, guildID int64) (*Group, error) {
	var g Group
	err := db.pool.QueryRow(ctx,
		"SELECT id, name, discord_guild_id FROM groups WHERE discord_guild_id = $1",
		guildID,
	).Scan(&g.ID, &g.Name, &g.DiscordGuildID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GroupsForUser lists every group the user is a member of, guests included.
func (db *DB) GroupsForUser(ctx context.Context, userID string) ([]Group, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT g.id, g.name, g.discord_guild_id
         FROM groups g
         JOIN group_members m ON m.group_id = g.id
         WHERE m.user_id = $1
         ORDER BY g.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.DiscordGuildID); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (db *DB) AddMember(ctx context.Context, groupID int64, userID, displayName string, isGuest bool) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id, display_name, is_guest)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (group_id, user_id) DO UPDATE SET display_name = EXCLUDED.display_name, is_guest = EXCLUDED.is_guest`,
		groupID, userID, displayName, isGuest,
	)
	return err
}

func (db *DB) RemoveMember(ctx context.Context, groupID int64, userID string) error {
	result, err := db.pool.Exec(ctx,
		"DELETE FROM group_members WHERE group_id = $1 AND user_id = $2",
		groupID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("member not found")
	}
	return nil
}

// ListMembers returns the group's members in join order. The cost roster is
// derived from this order, so it must be stable.
func (db *DB) ListMembers(ctx context.Context, groupID int64) ([]GroupMember, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT group_id, user_id, display_name, is_guest
         FROM group_members WHERE group_id = $1
         ORDER BY joined_at, user_id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []GroupMember
	for rows.Next() {
		var m GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.DisplayName, &m.IsGuest); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (db *DB) IsMember(ctx context.Context, groupID int64, userID string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)",
		groupID, userID,
	).Scan(&exists)
	return exists, err
}

func (db *DB) CreateInvite(ctx context.Context, code string, groupID int64, createdBy string, expiresAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		"INSERT INTO invites (code, group_id, created_by, expires_at) VALUES ($1, $2, $3, $4)",
		code, groupID, createdBy, expiresAt,
	)
	return err
}

func (db *DB) GetInvite(ctx context.Context, code string) (*Invite, error) {
	var inv Invite
	err := db.pool.QueryRow(ctx,
		"SELECT code, group_id, created_by, expires_at FROM invites WHERE code = $1",
		code,
	).Scan(&inv.Code, &inv.GroupID, &inv.CreatedBy, &inv.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (db *DB) DeleteInvite(ctx context.Context, code string) error {
	_, err := db.pool.Exec(ctx, "DELETE FROM invites WHERE code = $1", code)
	return err
}
