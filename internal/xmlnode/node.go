// Package xmlnode 把 XML 文档解析为只读节点树，并提供安全的取值方法。
//
// 取值方法（TextOf / AttrOf）对缺失的节点、文本或属性一律返回空字符串，
// 调用方不需要做 nil 判断。
package xmlnode

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// Node 是一个 XML 元素。
type Node struct {
	Name     string // 本地名，不含命名空间前缀
	Space    string // 命名空间 URI
	Attrs    []xml.Attr
	Children []*Node

	text strings.Builder
}

var (
	errNoRoot       = errors.New("文档没有根元素")
	errMultipleRoot = errors.New("文档包含多个根元素")
	errStrayText    = errors.New("根元素之外存在文本")
)

// Parse 严格解析 XML，返回根元素。
// 标签不匹配、缺少根元素、多个根元素或根外文本都视为格式错误。
func Parse(r io.Reader) (*Node, error) {
	p := xpp.NewXMLPullParser(r, true, charset.NewReaderLabel)

	var (
		root  *Node
		stack []*Node
	)
	for {
		event, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("解析 XML 失败: %w", err)
		}

		switch event {
		case xpp.StartTag:
			n := &Node{Name: p.Name, Space: p.Space, Attrs: p.Attrs}
			if len(stack) == 0 {
				if root != nil {
					return nil, errMultipleRoot
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xpp.EndTag:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xpp.Text:
			if len(stack) == 0 {
				if strings.TrimSpace(p.Text) != "" {
					return nil, errStrayText
				}
				continue
			}
			stack[len(stack)-1].text.WriteString(p.Text)
		case xpp.EndDocument:
			if root == nil {
				return nil, errNoRoot
			}
			return root, nil
		}
	}
}

// Descendants 按文档顺序（先序）返回节点自身及全部后代元素。
func (n *Node) Descendants() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		out = append(out, cur)
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Find 返回第一个本地名为 name 的后代元素（含自身），找不到返回 nil。
func (n *Node) Find(name string) *Node {
	for _, d := range n.Descendants() {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// TextOf 返回节点的直接文本内容。
// 节点为 nil、没有文本、或只有子元素（仅空白分隔）时返回 ""。
func TextOf(n *Node) string {
	if n == nil {
		return ""
	}
	s := n.text.String()
	if len(n.Children) > 0 && strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// AttrOf 返回节点上名为 name 的属性值（按本地名匹配），缺失时返回 ""。
func AttrOf(n *Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
