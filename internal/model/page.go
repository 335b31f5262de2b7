package model

// Pagination 分页元数据
type Pagination struct {
	Page        int  `json:"current_page"`
	NumPages    int  `json:"total_pages"`
	PerPage     int  `json:"page_size"`
	Total       int  `json:"total"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// PostPage 一页帖子
type PostPage struct {
	Posts      []*Post    `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ProfileFeed 用户主页：帖子分页、帖子总数以及当前用户是否已关注
type ProfileFeed struct {
	Author     *User     `json:"author"`
	PostsCount int       `json:"posts_count"`
	Following  bool      `json:"following"`
	Page       *PostPage `json:"page"`
}

// GroupFeed 分组页
type GroupFeed struct {
	Group *Group    `json:"group"`
	Page  *PostPage `json:"page"`
}

// PostDetail 帖子详情
type PostDetail struct {
	Post             *Post      `json:"post"`
	AuthorPostsCount int        `json:"author_posts_count"`
	Comments         []*Comment `json:"comments"`
}
