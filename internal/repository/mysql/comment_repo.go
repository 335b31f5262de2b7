package mysql

import (
	"context"
	"database/sql"
	"yatube-backend/internal/model"
	"yatube-backend/internal/util"

	"go.uber.org/zap"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `INSERT INTO comments (post_id, author_id, text, created) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		nullInt(comment.PostID), comment.AuthorID, comment.Text, comment.Created)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.Int("author_id", comment.AuthorID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新评论ID失败", zap.Error(err))
		return err
	}
	comment.ID = int(id)

	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

// ListByPost 按创建时间正序返回帖子的评论
func (r *commentRepository) ListByPost(ctx context.Context, postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.author_id, c.text, c.created, u.username, u.email
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.post_id = ?
        ORDER BY c.created ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		util.Logger.Error("获取评论列表失败", zap.Error(err), zap.Int("post_id", postID))
		return nil, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var (
			comment model.Comment
			author  model.User
			post    sql.NullInt64
		)
		if err := rows.Scan(
			&comment.ID, &post, &comment.AuthorID, &comment.Text, &comment.Created,
			&author.Username, &author.Email,
		); err != nil {
			return nil, err
		}
		comment.PostID = intPtr(post)
		author.ID = comment.AuthorID
		comment.Author = &author
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
