package implementation_test

import (
	"context"
	"testing"

	"ai-docqa-be/internal/model"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/implementation"
	"ai-docqa-be/internal/repository/unitofwork"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *implementation.GormConversationStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ChatSession{}, &model.ChatMessage{}))

	return implementation.NewGormConversationStore(unitofwork.NewRepositoryFactory(db), logger.NewNopLogger())
}

func TestGormStoreCreateSessionIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateSession(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	again, err := s.CreateSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	infos, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestGormStoreAddMessageAutoCreates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddMessage(ctx, "auto", "user", "Hi there", nil))

	info, err := s.GetSessionInfo(ctx, "auto")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 1, info.MessageCount)
}

func TestGormStoreContextFormatMatchesVolatile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "fmt")
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(ctx, "fmt", "user", "Hi", nil))
	require.NoError(t, s.AddMessage(ctx, "fmt", "assistant", "Hello", nil))

	got, err := s.GetContext(ctx, "fmt", 10)
	require.NoError(t, err)
	assert.Equal(t, "Previous conversation:\nUser: Hi\nAssistant: Hello", got)
}

func TestGormStoreHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateSession(ctx, "lim")
	require.NoError(t, err)
	for _, content := range []string{"one", "two", "three", "four"} {
		require.NoError(t, s.AddMessage(ctx, "lim", "user", content, nil))
	}

	history, err := s.GetHistory(ctx, "lim", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "three", history[0].Content)
	assert.Equal(t, "four", history[1].Content)
}

func TestGormStoreClearSessionRemovesMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddMessage(ctx, "gone", "user", "bye", nil))

	cleared, err := s.ClearSession(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, cleared)

	history, err := s.GetHistory(ctx, "gone", 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	cleared, err = s.ClearSession(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestGormStoreMetadataRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meta := map[string]interface{}{"workflow_type": "multi_document"}
	require.NoError(t, s.AddMessage(ctx, "meta", "assistant", "answer", meta))

	history, err := s.GetHistory(ctx, "meta", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "multi_document", history[0].Metadata["workflow_type"])
}
