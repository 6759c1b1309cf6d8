package queries

const (
	// Upsert Queries
	UpsertProfileQuery = `
		INSERT INTO profiles (
			user_id, gorilla_id, profile_data, created_at, updated_at
		) VALUES (
			$1, $2, $3, NOW(), NOW()
		)
		ON CONFLICT (user_id) DO UPDATE
		SET gorilla_id = EXCLUDED.gorilla_id,
			profile_data = EXCLUDED.profile_data,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	// Select Queries
	FindProfileByUserIDQuery = `
		SELECT user_id, gorilla_id, profile_data, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
)
