package mysql

import (
	"context"
	stderrors "errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrationOrder = []string{"users", "post_groups", "posts", "comments", "follows"}

func tableDDL(t *testing.T, table string) string {
	t.Helper()
	prefix := "CREATE TABLE IF NOT EXISTS " + table + " ("
	for _, stmt := range schema {
		if strings.HasPrefix(stmt, prefix) {
			return stmt
		}
	}
	t.Fatalf("table %s not found in schema", table)
	return ""
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.Len(t, schema, len(migrationOrder))
	for _, table := range migrationOrder {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS ` + table + `\s*\(`).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users\s*\(`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS post_groups\s*\(`).WillReturnError(stderrors.New("access denied"))

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate step 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 删除用户级联删除帖子、评论和关注；删除分组或帖子只把引用置空
func TestSchemaDeleteRules(t *testing.T) {
	tests := []struct {
		table      string
		constraint string
		column     string
		references string
		onDelete   string
	}{
		{"posts", "fk_posts_author", "author_id", "users", "CASCADE"},
		{"posts", "fk_posts_group", "group_id", "post_groups", "SET NULL"},
		{"comments", "fk_comments_post", "post_id", "posts", "SET NULL"},
		{"comments", "fk_comments_author", "author_id", "users", "CASCADE"},
		{"follows", "fk_follows_user", "user_id", "users", "CASCADE"},
		{"follows", "fk_follows_author", "author_id", "users", "CASCADE"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			pattern := `CONSTRAINT ` + tt.constraint + ` FOREIGN KEY \(` + tt.column + `\) REFERENCES ` +
				tt.references + ` \(id\) ON DELETE ` + tt.onDelete + `\b`
			assert.Regexp(t, regexp.MustCompile(pattern), tableDDL(t, tt.table))
		})
	}
}

func TestSchemaNullableReferences(t *testing.T) {
	assert.Regexp(t, `group_id\s+INT\s+NULL`, tableDDL(t, "posts"))
	assert.Regexp(t, `post_id\s+INT\s+NULL`, tableDDL(t, "comments"))
	assert.Regexp(t, `author_id\s+INT\s+NOT NULL`, tableDDL(t, "posts"))
}

func TestSchemaUniqueKeys(t *testing.T) {
	assert.Contains(t, tableDDL(t, "follows"), "UNIQUE KEY uq_follows_user_author (user_id, author_id)")
	assert.Contains(t, tableDDL(t, "post_groups"), "UNIQUE KEY uq_post_groups_slug (slug)")
	assert.Contains(t, tableDDL(t, "users"), "UNIQUE KEY uq_users_username (username)")
}
