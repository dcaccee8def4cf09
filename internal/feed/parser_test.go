package feed

import (
	"reflect"
	"testing"
	"time"
)

const testYoutubeFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
  <link rel="self" href="http://www.youtube.com/feeds/videos.xml?channel_id=UC123"/>
  <id>yt:channel:UC123</id>
  <title>测试频道</title>
  <entry>
    <id>yt:video:A</id>
    <yt:videoId>A</yt:videoId>
    <title>视频 A</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=A"/>
    <published>2023-05-01T10:00:00+00:00</published>
    <updated>2023-05-02T10:00:00+00:00</updated>
    <media:group>
      <media:title>视频 A</media:title>
      <media:thumbnail url="https://i.ytimg.com/vi/A/hqdefault.jpg" width="480" height="360"/>
    </media:group>
  </entry>
  <entry>
    <id>yt:video:B</id>
    <title>视频 B</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=B"/>
    <published>2024-01-01T08:30:00+08:00</published>
    <media:group>
      <media:title>视频 B</media:title>
      <media:thumbnail url="https://i.ytimg.com/vi/B/hqdefault.jpg"/>
    </media:group>
  </entry>
</feed>`

func TestParseEntries(t *testing.T) {
	entries := ParseEntries([]byte(testYoutubeFeed))
	if len(entries) != 2 {
		t.Fatalf("期望 2 个条目，得到 %d 个", len(entries))
	}

	a := entries[0]
	if a.ID != "yt:video:A" {
		t.Errorf("ID 不匹配: %s", a.ID)
	}
	if a.Title != "视频 A" {
		t.Errorf("标题不匹配: %s", a.Title)
	}
	if a.Link != "https://www.youtube.com/watch?v=A" {
		t.Errorf("链接不匹配: %s", a.Link)
	}
	if a.Thumbnail != "https://i.ytimg.com/vi/A/hqdefault.jpg" {
		t.Errorf("缩略图不匹配: %s", a.Thumbnail)
	}
}

func TestParseEntriesDocumentOrder(t *testing.T) {
	// B 的发布时间晚于 A，但结果仍按文档顺序
	entries := ParseEntries([]byte(testYoutubeFeed))
	if len(entries) != 2 {
		t.Fatalf("期望 2 个条目，得到 %d 个", len(entries))
	}
	if entries[0].ID != "yt:video:A" || entries[1].ID != "yt:video:B" {
		t.Errorf("条目顺序不对: %s, %s", entries[0].ID, entries[1].ID)
	}
}

func TestParseEntriesPublished(t *testing.T) {
	entries := ParseEntries([]byte(testYoutubeFeed))

	a := entries[0].Published
	if a == nil {
		t.Fatal("published 不应为 nil")
	}
	want := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	if !a.Equal(want) {
		t.Errorf("时间不匹配: %v", a)
	}
	if _, offset := a.Zone(); offset != 0 {
		t.Errorf("时区偏移应为 0，得到 %d", offset)
	}

	b := entries[1].Published
	if b == nil {
		t.Fatal("published 不应为 nil")
	}
	if _, offset := b.Zone(); offset != 8*3600 {
		t.Errorf("应保留 +08:00 偏移，得到 %d", offset)
	}
}

func TestParseEntriesMissingFields(t *testing.T) {
	doc := `<feed><entry><title>只有标题</title></entry></feed>`
	entries := ParseEntries([]byte(doc))
	if len(entries) != 1 {
		t.Fatalf("期望 1 个条目，得到 %d 个", len(entries))
	}

	e := entries[0]
	if e.Title != "只有标题" {
		t.Errorf("标题不匹配: %s", e.Title)
	}
	if e.ID != "" || e.Link != "" || e.Thumbnail != "" {
		t.Errorf("缺失字段应为空串: %+v", e)
	}
	if e.Published != nil {
		t.Errorf("缺少 published 时应为 nil，得到 %v", e.Published)
	}
}

func TestParseEntriesBadPublished(t *testing.T) {
	tests := []string{
		`<feed><entry><published>昨天</published></entry></feed>`,
		`<feed><entry><published></published></entry></feed>`,
		`<feed><entry><published>Mon, 01 May 2023 10:00:00 +0000</published></entry></feed>`,
	}
	for _, doc := range tests {
		entries := ParseEntries([]byte(doc))
		if len(entries) != 1 {
			t.Fatalf("期望 1 个条目，得到 %d 个", len(entries))
		}
		if entries[0].Published != nil {
			t.Errorf("无法解析的时间应为 nil: %s", doc)
		}
	}
}

func TestParseEntriesLinkUsesHref(t *testing.T) {
	doc := `<feed><entry><link href="https://example.com/v/abc">https://example.com/text</link></entry></feed>`
	entries := ParseEntries([]byte(doc))
	if len(entries) != 1 {
		t.Fatalf("期望 1 个条目，得到 %d 个", len(entries))
	}
	if entries[0].Link != "https://example.com/v/abc" {
		t.Errorf("应取 href 属性，得到 %s", entries[0].Link)
	}
}

func TestParseEntriesGroupWithoutThumbnail(t *testing.T) {
	doc := `<feed><entry><group><description>无缩略图</description></group></entry></feed>`
	entries := ParseEntries([]byte(doc))
	if len(entries) != 1 {
		t.Fatalf("期望 1 个条目，得到 %d 个", len(entries))
	}
	if entries[0].Thumbnail != "" {
		t.Errorf("缩略图应为空，得到 %s", entries[0].Thumbnail)
	}
}

func TestParseEntriesMalformed(t *testing.T) {
	tests := []string{
		"",
		"not xml",
		"<feed><entry><title>未闭合</entry></feed>",
		"<html><body><p>oops</body></html>",
		"{\"json\": true}",
	}
	for _, doc := range tests {
		if entries := ParseEntries([]byte(doc)); len(entries) != 0 {
			t.Errorf("格式错误的文档应返回空结果: %q 得到 %d 个", doc, len(entries))
		}
	}
}

func TestParseEntriesNoEntries(t *testing.T) {
	doc := `<rss version="2.0"><channel><item><title>RSS item</title></item></channel></rss>`
	if entries := ParseEntries([]byte(doc)); len(entries) != 0 {
		t.Errorf("没有 entry 元素时应返回空结果，得到 %d 个", len(entries))
	}
}

func TestParseEntriesIdempotent(t *testing.T) {
	first := ParseEntries([]byte(testYoutubeFeed))
	second := ParseEntries([]byte(testYoutubeFeed))
	if !reflect.DeepEqual(first, second) {
		t.Error("同一文档两次解析结果应一致")
	}
}

func TestFieldOf(t *testing.T) {
	tests := []struct {
		name string
		want entryField
	}{
		{"id", fieldID},
		{"title", fieldTitle},
		{"link", fieldLink},
		{"published", fieldPublished},
		{"group", fieldMediaGroup},
		{"updated", fieldIgnored},
		{"thumbnail", fieldIgnored},
		{"entry", fieldIgnored},
	}
	for _, tc := range tests {
		if got := fieldOf(tc.name); got != tc.want {
			t.Errorf("fieldOf(%q) = %d, 期望 %d", tc.name, got, tc.want)
		}
	}
}
