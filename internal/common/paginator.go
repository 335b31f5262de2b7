package common

import (
	"errors"
	"strconv"
)

// ItemsPerPage 每页条数
const ItemsPerPage = 5

// Paginator 按固定页大小切分结果集
type Paginator struct {
	Count   int
	PerPage int
}

func NewPaginator(count, perPage int) *Paginator {
	if perPage <= 0 {
		perPage = ItemsPerPage
	}
	return &Paginator{Count: count, PerPage: perPage}
}

// NumPages 总页数，空结果集也有一页
func (p *Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// GetPage 解析页码：缺省或非数字返回第 1 页，越界（含 < 1 和溢出 int 的整数）返回最后一页
func (p *Paginator) GetPage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return p.NumPages()
		}
		return 1
	}
	if page < 1 || page > p.NumPages() {
		return p.NumPages()
	}
	return page
}

// Offset 页码对应的偏移量
func (p *Paginator) Offset(page int) int {
	return (page - 1) * p.PerPage
}
