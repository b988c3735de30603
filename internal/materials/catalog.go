// Package materials recommends study resources for a course by keyword.
package materials

import "strings"

// NoMatch is returned as the only resource when no keyword matches.
const NoMatch = "暂无匹配的学习资料，可自行添加~"

// Topic pairs a keyword with its resources.
type Topic struct {
	Keyword   string   `json:"keyword"`
	Resources []string `json:"resources"`
}

// Catalog is an ordered keyword list. The first keyword contained in a
// course name wins, so more specific keywords must come first.
type Catalog struct {
	topics []Topic
}

// New builds a catalog from topics in the given order. The input is copied.
func New(topics []Topic) *Catalog {
	c := &Catalog{topics: make([]Topic, len(topics))}
	for i, t := range topics {
		c.topics[i] = Topic{Keyword: t.Keyword, Resources: append([]string(nil), t.Resources...)}
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

var defaultCatalog = New([]Topic{
	{"Python", []string{
		"Python官方文档: https://docs.python.org",
		"菜鸟教程Python: https://www.runoob.com/python",
	}},
	{"人工智能", []string{
		"李沐《动手学深度学习》: https://zh.d2l.ai",
		"吴恩达AI课程: https://www.coursera.org/specializations/ai-for-everyone",
	}},
	{"数据结构", []string{
		"数据结构与算法分析: https://book.douban.com/subject/1139426/",
		"LeetCode刷题指南: https://leetcode.cn",
	}},
	{"高数", []string{
		"同济高数教材: https://www.tongji.edu.cn",
		"高数网课: https://www.bilibili.com/video/BV1YT411g7br",
	}},
})

// Recommend returns the resources of the first keyword found in name, or a
// single-element list holding NoMatch. The result is a fresh slice.
func (c *Catalog) Recommend(name string) []string {
	for _, t := range c.topics {
		if strings.Contains(name, t.Keyword) {
			return append([]string(nil), t.Resources...)
		}
	}
	return []string{NoMatch}
}

// Topics returns a copy of the catalog in lookup order.
func (c *Catalog) Topics() []Topic {
	return New(c.topics).topics
}
