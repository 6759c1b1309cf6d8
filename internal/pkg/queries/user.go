package queries

const (
	// Insert Queries
	CreateUserQuery = `
		INSERT INTO users (
			id, username, email, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, NOW(), NOW()
		) RETURNING created_at
	`

	// Select Queries
	FindUserByFieldQueryTemplate = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE %s = $1
	`

	FindUserByEmailOrUsernameQuery = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1 OR username = $2
		LIMIT 1
	`
)
