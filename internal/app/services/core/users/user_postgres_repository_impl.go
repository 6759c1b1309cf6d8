package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/queries"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	pqUniqueViolation       = "23505"
	usersUsernameConstraint = "users_username_key"
)

type userPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	userPostgresRepositoryInstance contracts.UserRepository
	onceUserPostgresRepository     sync.Once
)

func NewUserPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.UserRepository {
	onceUserPostgresRepository.Do(func() {
		instance := &userPostgresRepository{
			DB:  db,
			Log: logger,
		}
		userPostgresRepositoryInstance = instance
	})
	return userPostgresRepositoryInstance
}

func (r *userPostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)

	err := r.DB.QueryRowContext(ctx, queries.CreateUserQuery,
		user.ID, user.Username, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			r.Log.Warn("userPostgresRepository.CreateUser unique constraint violated",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("constraint", pqErr.Constraint),
			)
			if pqErr.Constraint == usersUsernameConstraint {
				return exceptions.ErrUsernameAlreadyExist(err)
			}
			return exceptions.ErrEmailAlreadyExist(err)
		}

		r.Log.Error("userPostgresRepository.CreateUser error inserting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}
	user.UpdatedAt = user.CreatedAt

	r.Log.Info("userPostgresRepository.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return nil
}

func (r *userPostgresRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return r.findOne(ctx, "id", userID)
}

func (r *userPostgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByUsername called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUsernameKey, username),
	)
	return r.findOne(ctx, "username", username)
}

func (r *userPostgresRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("userPostgresRepository.FindByEmailOrUsername called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return r.findUser(ctx, queries.FindUserByEmailOrUsernameQuery, email, username)
}

func (r *userPostgresRepository) findOne(ctx context.Context, field string, value interface{}) (*models.User, error) {
	query := fmt.Sprintf(queries.FindUserByFieldQueryTemplate, field)
	return r.findUser(ctx, query, value)
}

func (r *userPostgresRepository) findUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var user models.User
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			r.Log.Warn("userPostgresRepository.findUser no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("userPostgresRepository.findUser error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	r.Log.Info("userPostgresRepository.findUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &user, nil
}
