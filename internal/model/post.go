package model

import "time"

// postTitleLength 帖子字符串表示的最大长度
const postTitleLength = 15

// Post 帖子。pub_date 创建后不可修改；删除作者级联删除帖子，删除分组只把 GroupID 置空
type Post struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID int       `json:"author_id"`
	GroupID  *int      `json:"group_id"`
	Image    string    `json:"image,omitempty"`
	Author   *User     `json:"author,omitempty"`
	Group    *Group    `json:"group,omitempty"`
}

// String 返回截断到 15 个字符的文本，仅用于展示和日志
func (p *Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > postTitleLength {
		return string(runes[:postTitleLength])
	}
	return p.Text
}

// Comment 评论。删除帖子时 PostID 置空，删除作者时级联删除
type Comment struct {
	ID       int       `json:"id"`
	PostID   *int      `json:"post_id"`
	AuthorID int       `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
	Author   *User     `json:"author,omitempty"`
}

// Follow 关注关系：UserID 关注 AuthorID，(UserID, AuthorID) 唯一
type Follow struct {
	ID       int `json:"id"`
	UserID   int `json:"user_id"`
	AuthorID int `json:"author_id"`
}
