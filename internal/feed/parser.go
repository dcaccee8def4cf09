package feed

import (
	"bytes"
	"strings"
	"time"

	"github.com/iabetor/mim/internal/logger"
	"github.com/iabetor/mim/internal/xmlnode"
)

// entryField 是条目内可识别的元素种类。
type entryField int

const (
	fieldIgnored entryField = iota
	fieldID
	fieldTitle
	fieldLink
	fieldPublished
	fieldMediaGroup
)

// fieldOf 按元素本地名分派，未列出的名称一律忽略。
func fieldOf(name string) entryField {
	switch name {
	case "id":
		return fieldID
	case "title":
		return fieldTitle
	case "link":
		return fieldLink
	case "published":
		return fieldPublished
	case "group":
		return fieldMediaGroup
	default:
		return fieldIgnored
	}
}

// ParseEntries 解析订阅文档，按文档顺序返回所有 entry 元素。
// 文档格式错误时返回空结果，不返回错误。
func ParseEntries(doc []byte) []Entry {
	root, err := xmlnode.Parse(bytes.NewReader(doc))
	if err != nil {
		logger.Warnf("[feed] 订阅文档解析失败: %v", err)
		return nil
	}

	var entries []Entry
	for _, n := range root.Descendants() {
		if n.Name == "entry" {
			entries = append(entries, parseEntry(n))
		}
	}
	return entries
}

// parseEntry 遍历 entry 的全部后代；同名元素出现多次时以最后一个为准。
func parseEntry(n *xmlnode.Node) Entry {
	var e Entry
	for _, d := range n.Descendants() {
		switch fieldOf(d.Name) {
		case fieldID:
			e.ID = xmlnode.TextOf(d)
		case fieldTitle:
			e.Title = xmlnode.TextOf(d)
		case fieldLink:
			e.Link = xmlnode.AttrOf(d, "href")
		case fieldPublished:
			e.Published = parsePublished(xmlnode.TextOf(d))
		case fieldMediaGroup:
			e.Thumbnail = xmlnode.AttrOf(d.Find("thumbnail"), "url")
		case fieldIgnored:
		}
	}
	return e
}

// parsePublished 解析 RFC 3339 时间并保留原始时区偏移，失败时返回 nil。
func parsePublished(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		logger.Debugf("[feed] 无法解析发布时间 %q: %v", s, err)
		return nil
	}
	return &t
}
