package database

import (
	"encoding/json"
	"fmt"

	"github.com/focustense/penpals-server/internal/gifting"
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

// SaveStore replaces the persisted gift-mail state with a full snapshot of
// the in-memory store, atomically. The store is small (a handful of parcels
// per player at most) so snapshotting beats tracking row-level changes.
func (d *Database) SaveStore(store *gifting.Store) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM outgoing_gifts"); err != nil {
		return fmt.Errorf("failed to clear outgoing gifts: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM returned_gifts"); err != nil {
		return fmt.Errorf("failed to clear returned gifts: %w", err)
	}

	insertOutgoing := d.qb.Build(`
		INSERT INTO outgoing_gifts (player_id, npc_name, gift, quest_id)
		VALUES (?, ?, ?, ?)`)
	insertReturned := d.qb.Build(`
		INSERT INTO returned_gifts (return_id, player_id, npc_name, gift, pickup_year, pickup_season, pickup_day, reasons)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	for playerID, data := range store.PlayerGiftMail {
		for npcName, parcel := range data.OutgoingGifts {
			giftJSON, err := json.Marshal(parcel.Gift)
			if err != nil {
				return fmt.Errorf("failed to marshal gift for %s: %w", npcName, err)
			}
			if _, err := tx.Exec(insertOutgoing, playerID, npcName, string(giftJSON), parcel.QuestID); err != nil {
				return fmt.Errorf("failed to insert outgoing gift: %w", err)
			}
		}
		for returnID, returned := range data.ReturnedGifts {
			giftJSON, err := json.Marshal(returned.Gift)
			if err != nil {
				return fmt.Errorf("failed to marshal returned gift %s: %w", returnID, err)
			}
			_, err = tx.Exec(insertReturned,
				returnID, playerID, returned.NPCName, string(giftJSON),
				returned.PickupDate.Year, returned.PickupDate.Season.Key(), returned.PickupDate.Day,
				int64(returned.Reasons))
			if err != nil {
				return fmt.Errorf("failed to insert returned gift: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadStore reads the persisted gift-mail state into a fresh store.
func (d *Database) LoadStore() (*gifting.Store, error) {
	store := gifting.NewStore()

	rows, err := d.db.Query(`SELECT player_id, npc_name, gift, quest_id FROM outgoing_gifts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query outgoing gifts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playerID int64
		var npcName, giftJSON, questID string
		if err := rows.Scan(&playerID, &npcName, &giftJSON, &questID); err != nil {
			return nil, fmt.Errorf("failed to scan outgoing gift: %w", err)
		}
		gift := &world.Item{}
		if err := json.Unmarshal([]byte(giftJSON), gift); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gift for %s: %w", npcName, err)
		}
		store.DataFor(playerID).OutgoingGifts[npcName] = gifting.Parcel{Gift: gift, QuestID: questID}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outgoing gifts: %w", err)
	}

	returnedRows, err := d.db.Query(`
		SELECT return_id, player_id, npc_name, gift, pickup_year, pickup_season, pickup_day, reasons
		FROM returned_gifts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query returned gifts: %w", err)
	}
	defer returnedRows.Close()

	for returnedRows.Next() {
		var returnID, npcName, giftJSON, seasonKey string
		var playerID, reasons int64
		var year, day int
		err := returnedRows.Scan(&returnID, &playerID, &npcName, &giftJSON, &year, &seasonKey, &day, &reasons)
		if err != nil {
			return nil, fmt.Errorf("failed to scan returned gift: %w", err)
		}
		gift := &world.Item{}
		if err := json.Unmarshal([]byte(giftJSON), gift); err != nil {
			return nil, fmt.Errorf("failed to unmarshal returned gift %s: %w", returnID, err)
		}
		season, ok := worlddate.ParseSeason(seasonKey)
		if !ok {
			return nil, fmt.Errorf("returned gift %s has unknown season %q", returnID, seasonKey)
		}
		store.DataFor(playerID).ReturnedGifts[returnID] = gifting.ReturnedGift{
			NPCName:    npcName,
			Gift:       gift,
			PickupDate: worlddate.WorldDate{Year: year, Season: season, Day: day},
			Reasons:    gifting.NonGiftableReasons(reasons),
		}
	}
	if err := returnedRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read returned gifts: %w", err)
	}

	return store, nil
}
