package queries

const (
	// Select Queries
	FindRecordCollectionQuery = `
		SELECT user_id, category, gorilla_id, entries, created_at, updated_at
		FROM record_collections
		WHERE user_id = $1 AND category = $2
	`

	// Upsert Queries
	ReplaceRecordCollectionQuery = `
		INSERT INTO record_collections (
			user_id, category, gorilla_id, entries, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, NOW(), NOW()
		)
		ON CONFLICT (user_id, category) DO UPDATE
		SET gorilla_id = COALESCE(EXCLUDED.gorilla_id, record_collections.gorilla_id),
			entries = EXCLUDED.entries,
			updated_at = NOW()
	`
)
