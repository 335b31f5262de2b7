package mysql

import (
	"context"
	"database/sql"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/util"

	"go.uber.org/zap"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	query := `INSERT INTO post_groups (title, slug, description) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, group.Title, group.Slug, group.Description)
	if err != nil {
		if isDuplicateEntry(err) {
			return errors.Wrap(errors.ErrGroupExists, "分组 slug 已存在", err)
		}
		util.Logger.Error("创建分组失败", zap.Error(err), zap.String("slug", group.Slug))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	group.ID = int(id)

	util.Logger.Info("分组创建成功", zap.Int("group_id", group.ID), zap.String("slug", group.Slug))
	return nil
}

func (r *groupRepository) findOne(ctx context.Context, where string, arg interface{}) (*model.Group, error) {
	var group model.Group
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, slug, description FROM post_groups WHERE `+where, arg,
	).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindByID(ctx context.Context, id int) (*model.Group, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *groupRepository) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *groupRepository) List(ctx context.Context) ([]*model.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, slug, description FROM post_groups ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_groups WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除分组失败", zap.Error(err), zap.Int("group_id", id))
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.New(errors.ErrGroupNotFound, "分组不存在")
	}
	util.Logger.Info("分组删除成功", zap.Int("group_id", id))
	return nil
}
