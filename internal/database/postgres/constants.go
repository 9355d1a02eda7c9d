package postgres

// Error Messages - Snapshot Operations
const (
	ErrMsgFailedToGetSnapshot  = "failed to get snapshot"
	ErrMsgFailedToSaveSnapshot = "failed to save snapshot"
)

// Queries
const (
	queryGetSnapshot = `
		SELECT blob
		FROM hive_snapshots
		WHERE snapshot_key = $1
	`

	queryUpsertSnapshot = `
		INSERT INTO hive_snapshots (snapshot_key, blob, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (snapshot_key)
		DO UPDATE SET blob = EXCLUDED.blob, updated_at = NOW()
	`
)
