package migration

import (
	"database/sql"
	"embed"
	"theracare-service/internal/pkg/constvars"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}

// Up applies every pending migration and returns how many ran.
func Up(db *sql.DB, log *zap.Logger) (int, error) {
	n, err := migrate.Exec(db, "postgres", source(), migrate.Up)
	if err != nil {
		log.Error("migration.Up error executing migration", zap.Error(err))
		return 0, err
	}

	log.Info("migration.Up succeeded", zap.Int(constvars.LoggingMigrationCountKey, n))
	return n, nil
}

// Down rolls back at most max migrations, all of them when max is 0.
func Down(db *sql.DB, log *zap.Logger, max int) (int, error) {
	n, err := migrate.ExecMax(db, "postgres", source(), migrate.Down, max)
	if err != nil {
		log.Error("migration.Down error rolling back migration", zap.Error(err))
		return 0, err
	}

	log.Info("migration.Down succeeded", zap.Int(constvars.LoggingMigrationCountKey, n))
	return n, nil
}
