package mysql

import (
	"context"
	"database/sql"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/util"

	"go.uber.org/zap"
)

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db: db}
}

// GetOrCreate 并发插入同一对 (user, author) 时依赖唯一索引兜底
func (r *followRepository) GetOrCreate(ctx context.Context, userID, authorID int) (bool, error) {
	exists, err := r.Exists(ctx, userID, authorID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO follows (user_id, author_id) VALUES (?, ?)`, userID, authorID)
	if err != nil {
		if isDuplicateEntry(err) {
			util.Logger.Debug("关注关系已被并发创建",
				zap.Int("user_id", userID), zap.Int("author_id", authorID))
			return false, nil
		}
		util.Logger.Error("创建关注失败", zap.Error(err))
		return false, err
	}

	util.Logger.Info("关注创建成功", zap.Int("user_id", userID), zap.Int("author_id", authorID))
	return true, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID)
	if err != nil {
		util.Logger.Error("删除关注失败", zap.Error(err))
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New(errors.ErrFollowNotFound, "关注关系不存在")
	}

	util.Logger.Info("关注删除成功", zap.Int("user_id", userID), zap.Int("author_id", authorID))
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE user_id = ? AND author_id = ?
        )`, userID, authorID).Scan(&exists)
	return exists, err
}

func (r *followRepository) listUsers(ctx context.Context, query string, id int) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int) ([]*model.User, error) {
	return r.listUsers(ctx, `
        SELECT u.id, u.username, u.email
        FROM users u
        JOIN follows f ON u.id = f.author_id
        WHERE f.user_id = ?
        ORDER BY f.id DESC`, userID)
}

func (r *followRepository) ListFollowers(ctx context.Context, authorID int) ([]*model.User, error) {
	return r.listUsers(ctx, `
        SELECT u.id, u.username, u.email
        FROM users u
        JOIN follows f ON u.id = f.user_id
        WHERE f.author_id = ?
        ORDER BY f.id DESC`, authorID)
}
