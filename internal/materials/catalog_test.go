package materials_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Tiliavir/campus-timetable/internal/materials"
)

func TestRecommend(t *testing.T) {
	c := materials.Default()
	tests := []struct {
		name       string
		wantPrefix string
	}{
		{"Python程序设计", "Python官方文档"},
		{"人工智能导论", "李沐"},
		{"数据结构与算法", "数据结构与算法分析"},
		{"高数（上）", "同济高数教材"},
	}
	for _, tt := range tests {
		got := c.Recommend(tt.name)
		if len(got) != 2 || !strings.HasPrefix(got[0], tt.wantPrefix) {
			t.Errorf("Recommend(%q) = %q, want first item starting with %q", tt.name, got, tt.wantPrefix)
		}
	}
}

func TestRecommendFallback(t *testing.T) {
	got := materials.Default().Recommend("未知课程")
	want := []string{materials.NoMatch}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend(未知课程) = %q, want %q", got, want)
	}
}

func TestRecommendFirstMatchWins(t *testing.T) {
	c := materials.New([]materials.Topic{
		{Keyword: "Python", Resources: []string{"py"}},
		{Keyword: "人工智能", Resources: []string{"ai"}},
	})
	if got := c.Recommend("人工智能Python实践"); !reflect.DeepEqual(got, []string{"py"}) {
		t.Errorf("Recommend = %q, want [py] (declaration order wins)", got)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	c := materials.Default()
	got := c.Recommend("Python")
	got[0] = "tampered"
	if c.Recommend("Python")[0] == "tampered" {
		t.Error("Recommend exposes catalog storage")
	}

	topics := c.Topics()
	topics[0].Keyword = "tampered"
	if c.Topics()[0].Keyword != "Python" {
		t.Error("Topics exposes catalog storage")
	}
}

func TestRecommendTongjiLink(t *testing.T) {
	got := materials.Default().Recommend("高数")
	if got[0] != "同济高数教材: https://www.tongji.edu.cn" {
		t.Errorf("Recommend(高数)[0] = %q", got[0])
	}
}
