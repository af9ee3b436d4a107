package goodreads

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// parseXML converts a document into a single-key map {rootTag: tree}.
//
// An element with neither attributes nor child elements becomes its stripped
// text, or Null when the text is empty. Otherwise it becomes a map holding
// "@attr" entries, then child elements, then "#text" when non-blank text
// remains. Repeated child tags collapse into a list.
func parseXML(body []byte) (*Value, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("failed to parse XML: no root element")
	}

	return Map(Pair{Key: root.FullTag(), Value: convertElement(root)}), nil
}

func convertElement(el *etree.Element) *Value {
	var text strings.Builder
	children := make([]*etree.Element, 0, len(el.Child))
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			text.WriteString(t.Data)
		case *etree.Element:
			children = append(children, t)
		}
	}
	content := strings.TrimSpace(text.String())

	if len(el.Attr) == 0 && len(children) == 0 {
		if content == "" {
			return Null()
		}
		return String(content)
	}

	node := &Value{kind: KindMap}
	for _, attr := range el.Attr {
		node.Set(AttrPrefix+attr.FullKey(), String(attr.Value))
	}
	for _, child := range children {
		node.appendRepeated(child.FullTag(), convertElement(child))
	}
	if content != "" {
		node.Set(TextKey, String(content))
	}
	return node
}
