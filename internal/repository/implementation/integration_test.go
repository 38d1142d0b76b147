package implementation_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/model"
	"eli5-bot/internal/repository/specification"
	"eli5-bot/internal/repository/unitofwork"
	"eli5-bot/pkg/apperror"
	"eli5-bot/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB connects to DB_CONNECTION_STRING or skips.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.ChatSession{}))
	return db
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        "integration-" + uuid.NewString() + "@example.com",
		Name:         "Integration Test User",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	t.Cleanup(func() {
		db.Where("user_id = ?", user.Id).Delete(&model.ChatSession{})
		db.Where("id = ?", user.Id).Delete(&model.User{})
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := &entity.User{Id: uuid.New(), Email: user.Email, Name: "Dup", PasswordHash: "x"}
		err := uow.UserRepository().Create(ctx, dup)
		assert.Equal(t, apperror.KindAlreadyExists, apperror.KindOf(err))
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		tx := unitofwork.NewUnitOfWork(db)
		require.NoError(t, tx.Begin(ctx))
		ghost := &entity.User{Id: uuid.New(), Email: "ghost-" + uuid.NewString() + "@example.com", Name: "Ghost", PasswordHash: "x"}
		require.NoError(t, tx.UserRepository().Create(ctx, ghost))
		require.NoError(t, tx.Rollback())

		found, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: ghost.Email})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("session lifecycle", func(t *testing.T) {
		repo := uow.ChatSessionRepository()
		base := time.UnixMilli(time.Now().UnixMilli())

		older := &entity.ChatSession{
			Id: uuid.NewString(), UserId: user.Id, Title: entity.DefaultSessionTitle,
			Messages: []entity.Message{}, LastUpdated: base,
		}
		newer := &entity.ChatSession{
			Id: uuid.NewString(), UserId: user.Id, Title: entity.DefaultSessionTitle,
			Messages: []entity.Message{}, LastUpdated: base.Add(time.Second),
		}
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, newer))

		level := entity.LevelTeen
		messages := []entity.Message{{Id: "m1", Role: entity.RoleUser, Content: "Why?", Timestamp: base.UnixMilli(), Level: &level}}
		title := "Why?"
		bumped := base.Add(2 * time.Second)
		ok, err := repo.Patch(ctx, older.Id, user.Id, entity.ChatSessionPatch{
			Title: &title, Messages: &messages, LastUpdated: &bumped,
		})
		require.NoError(t, err)
		assert.True(t, ok)

		sessions, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: user.Id}, specification.MostRecentFirst{})
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, older.Id, sessions[0].Id)
		assert.Equal(t, "Why?", sessions[0].Title)
		require.Len(t, sessions[0].Messages, 1)
		assert.Equal(t, entity.LevelTeen, *sessions[0].Messages[0].Level)
		assert.True(t, bumped.Equal(sessions[0].LastUpdated))

		ok, err = repo.Patch(ctx, older.Id, uuid.New(), entity.ChatSessionPatch{Title: &title})
		require.NoError(t, err)
		assert.False(t, ok, "another user's session must not be writable")

		ok, err = repo.Delete(ctx, newer.Id, user.Id)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = repo.Delete(ctx, newer.Id, user.Id)
		require.NoError(t, err)
		assert.False(t, ok)

		count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: user.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
