package feed

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		input string
		want  Source
	}{
		{"rss", SourceRSS},
		{"youtube", SourceYoutube},
		{"YouTube", SourceYoutube},
		{" rss ", SourceRSS},
	}
	for _, tc := range tests {
		got, err := ParseSource(tc.input)
		if err != nil {
			t.Errorf("ParseSource(%q) 失败: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSource(%q) = %v, 期望 %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseSource("vimeo"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("未知来源应返回 ErrUnknownSource，得到 %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range []Category{CategoryEntertainment, CategoryMusic, CategoryTechnology} {
		got, err := ParseCategory(c.Token())
		if err != nil || got != c {
			t.Errorf("分类 %v 往返失败: %v, %v", c, got, err)
		}
	}

	if _, err := ParseCategory("sports"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("未知分类应返回 ErrUnknownCategory，得到 %v", err)
	}
}

func TestDisplayNames(t *testing.T) {
	checks := map[string]string{
		SourceRSS.String():             "RSS",
		SourceYoutube.String():         "Youtube",
		CategoryEntertainment.String(): "Entertainment",
		CategoryMusic.String():         "Music",
		CategoryTechnology.String():    "Technology",
	}
	for got, want := range checks {
		if got != want {
			t.Errorf("显示名称不匹配: %s, 期望 %s", got, want)
		}
	}
}

func TestFeedJSONRoundTrip(t *testing.T) {
	in := Feed{ID: "@abc", Source: SourceYoutube, Category: CategoryMusic}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal 失败: %v", err)
	}
	if string(data) != `{"id":"@abc","source":"youtube","category":"music"}` {
		t.Errorf("序列化结果不符: %s", data)
	}

	var out Feed
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal 失败: %v", err)
	}
	if out != in {
		t.Errorf("往返结果不一致: %+v", out)
	}
}

func TestUnmarshalInvalidToken(t *testing.T) {
	var f Feed
	if err := json.Unmarshal([]byte(`{"id":"x","source":"ftp","category":"music"}`), &f); err == nil {
		t.Error("无效来源应返回错误")
	}
}
