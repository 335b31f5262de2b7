package mysql

import (
	"context"
	"database/sql"
	"yatube-backend/internal/model"
	"yatube-backend/internal/repository/interfaces"
	"yatube-backend/internal/util"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (text, pub_date, author_id, group_id, image) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		post.Text, post.PubDate, post.AuthorID, nullInt(post.GroupID), post.Image)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err), zap.Int("author_id", post.AuthorID))
		return err
	}

	postID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	post.ID = int(postID)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID), zap.Stringer("post", post))
	return nil
}

// selectPosts 帖子列表的基础查询，作者和分组通过 JOIN 一次取出
func selectPosts() sq.SelectBuilder {
	return sq.Select(
		"p.id", "p.text", "p.pub_date", "p.author_id", "p.group_id", "p.image",
		"u.username", "u.email", "g.title", "g.slug", "g.description",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("post_groups g ON g.id = p.group_id")
}

func applyPostFilter(q sq.SelectBuilder, filter interfaces.PostFilter) sq.SelectBuilder {
	if filter.GroupID != nil {
		q = q.Where(sq.Eq{"p.group_id": *filter.GroupID})
	}
	if filter.AuthorID != nil {
		q = q.Where(sq.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.FollowerID != nil {
		q = q.Where("p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = ?)", *filter.FollowerID)
	}
	return q
}

func scanPost(row sq.RowScanner) (*model.Post, error) {
	var (
		post       model.Post
		author     model.User
		groupID    sql.NullInt64
		groupTitle sql.NullString
		groupSlug  sql.NullString
		groupDescr sql.NullString
	)
	err := row.Scan(
		&post.ID, &post.Text, &post.PubDate, &post.AuthorID, &groupID, &post.Image,
		&author.Username, &author.Email, &groupTitle, &groupSlug, &groupDescr,
	)
	if err != nil {
		return nil, err
	}

	author.ID = post.AuthorID
	post.Author = &author
	post.GroupID = intPtr(groupID)
	if post.GroupID != nil {
		post.Group = &model.Group{
			ID:          *post.GroupID,
			Title:       groupTitle.String,
			Slug:        groupSlug.String,
			Description: groupDescr.String,
		}
	}
	return &post, nil
}

// FindByID 不存在时返回 nil, nil
func (r *postRepository) FindByID(ctx context.Context, id int) (*model.Post, error) {
	row := selectPosts().
		Where(sq.Eq{"p.id": id}).
		RunWith(r.db).
		QueryRowContext(ctx)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		util.Logger.Error("查询帖子失败", zap.Error(err), zap.Int("post_id", id))
		return nil, err
	}
	return post, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET text = ?, group_id = ?, image = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, post.Text, nullInt(post.GroupID), post.Image, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	util.Logger.Info("帖子更新成功", zap.Int("post_id", post.ID))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id int) error {
	util.Logger.Info("开始删除帖子", zap.Int("post_id", id))

	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}

	util.Logger.Info("帖子删除成功", zap.Int("post_id", id))
	return nil
}

func (r *postRepository) List(ctx context.Context, filter interfaces.PostFilter, limit, offset int) ([]*model.Post, error) {
	q := applyPostFilter(selectPosts(), filter).
		OrderBy("p.pub_date DESC", "p.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		util.Logger.Error("查询帖子列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Count(ctx context.Context, filter interfaces.PostFilter) (int, error) {
	var total int
	err := applyPostFilter(sq.Select("COUNT(*)").From("posts p"), filter).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&total)
	return total, err
}
