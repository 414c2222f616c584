package quiz_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/storage"
)

const bankJSON = `[
  {
    "id": 1,
    "分類": "IT",
    "題號": "IT-01",
    "主題": "資料庫",
    "敘述": "請說明正規化",
    "面向": [
      {"名稱": "定義", "提示": "目的為何", "解答": "資料庫 正規化 降低 冗餘"}
    ]
  },
  {
    "id": 2,
    "分類": "軟體",
    "題號": "SW-01",
    "主題": "版本控制",
    "面向": [{"名稱": "工具", "解答": "git"}]
  }
]`

func TestDecodeQuestions_JSON(t *testing.T) {
	qs, err := quiz.DecodeQuestions(strings.NewReader(bankJSON), quiz.FormatJSON)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "IT", qs[0].Category)
	assert.Equal(t, "IT-01", qs[0].Number)
	assert.Equal(t, "請說明正規化", qs[0].Description)
	assert.Equal(t, "目的為何", qs[0].Aspects[0].Hint)
	assert.Equal(t, "資料庫 正規化 降低 冗餘", qs[0].Aspects[0].Answer)
}

func TestDecodeQuestions_YAML(t *testing.T) {
	src := `
- id: 7
  分類: IT
  主題: 網路
  面向:
    - 名稱: 協定
      解答: tcp ip
`
	qs, err := quiz.DecodeQuestions(strings.NewReader(src), quiz.FormatYAML)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, 7, qs[0].ID)
	assert.Equal(t, "tcp ip", qs[0].Aspects[0].Answer)
}

func TestDecodeQuestions_Malformed(t *testing.T) {
	_, err := quiz.DecodeQuestions(strings.NewReader(`{"id":`), quiz.FormatJSON)
	assert.Error(t, err)
}

func TestFormatFromName(t *testing.T) {
	assert.Equal(t, quiz.FormatYAML, quiz.FormatFromName("bank.YML"))
	assert.Equal(t, quiz.FormatYAML, quiz.FormatFromName("yaml"))
	assert.Equal(t, quiz.FormatJSON, quiz.FormatFromName("questions.json"))
	assert.Equal(t, quiz.FormatJSON, quiz.FormatFromName(""))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "questions.json"), []byte(bankJSON), 0o644))
	bs, err := storage.NewFSStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	src := quiz.NewFileSource(bs, "questions.json")
	qs, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	require.NoError(t, src.Save(ctx, qs[:1]))
	qs, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestFileSource_YAMLRoundTrip(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	src := quiz.NewFileSource(bs, "banks/main.yaml")
	require.NoError(t, src.Save(ctx, sampleQuestions()))

	qs, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleQuestions(), qs)
}

func TestFileSource_Missing(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = quiz.NewFileSource(bs, "nope.json").Load(context.Background())
	assert.ErrorIs(t, err, quiz.ErrNotFound)
}

func TestSQLStore_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "quiz.db") + "?_pragma=busy_timeout(5000)"
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	exerciseSQLStore(t, quiz.NewSQLStore(dbh))
}

func exerciseSQLStore(t *testing.T, store *quiz.SQLStore) {
	t.Helper()
	ctx := context.Background()

	qs, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, qs)

	require.NoError(t, store.Save(ctx, sampleQuestions()))
	qs, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleQuestions(), qs, "order and aspects survive")

	require.NoError(t, store.Save(ctx, sampleQuestions()[1:2]))
	qs, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, 2, qs[0].ID)

	dup := append(sampleQuestions(), quiz.Question{ID: 1, Category: "IT", Topic: "dup"})
	assert.Error(t, store.Save(ctx, dup))
	qs, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, qs, 1, "failed save is rolled back")
}
