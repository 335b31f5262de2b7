package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"yatube-backend/internal/util"

	"go.uber.org/zap"
)

// 外键的级联规则是数据完整性约束的一部分：
// 删除用户 -> 删除其帖子、评论、关注关系；删除分组 -> 帖子 group_id 置空；
// 删除帖子 -> 评论 post_id 置空。
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INT AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(150) NOT NULL,
		email         VARCHAR(254) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(20)  NOT NULL DEFAULT 'user',
		created_at    DATETIME(6)  NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS post_groups (
		id          INT AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(200) NOT NULL,
		slug        VARCHAR(100) NOT NULL,
		description TEXT         NOT NULL,
		UNIQUE KEY uq_post_groups_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS posts (
		id        INT AUTO_INCREMENT PRIMARY KEY,
		text      TEXT         NOT NULL,
		pub_date  DATETIME(6)  NOT NULL,
		author_id INT          NOT NULL,
		group_id  INT          NULL,
		image     VARCHAR(255) NOT NULL DEFAULT '',
		KEY idx_posts_pub_date (pub_date),
		CONSTRAINT fk_posts_author FOREIGN KEY (author_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_posts_group FOREIGN KEY (group_id) REFERENCES post_groups (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS comments (
		id        INT AUTO_INCREMENT PRIMARY KEY,
		post_id   INT         NULL,
		author_id INT         NOT NULL,
		text      TEXT        NOT NULL,
		created   DATETIME(6) NOT NULL,
		CONSTRAINT fk_comments_post FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE SET NULL,
		CONSTRAINT fk_comments_author FOREIGN KEY (author_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS follows (
		id        INT AUTO_INCREMENT PRIMARY KEY,
		user_id   INT NOT NULL,
		author_id INT NOT NULL,
		UNIQUE KEY uq_follows_user_author (user_id, author_id),
		CONSTRAINT fk_follows_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_follows_author FOREIGN KEY (author_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate 创建缺失的表
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			util.Logger.Error("执行迁移失败", zap.Int("step", i), zap.Error(err))
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	util.Logger.Info("数据库迁移完成", zap.Int("tables", len(schema)))
	return nil
}
