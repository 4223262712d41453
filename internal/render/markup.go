package render

import "strings"

// BulletMarker opens a list item line in answer text.
const BulletMarker = "•"

// BlockKind classifies a markup block.
type BlockKind int

const (
	// KindParagraph is a single non-bullet line.
	KindParagraph BlockKind = iota
	// KindList is a run of consecutive bullet lines.
	KindList
	// KindLines is plain content with line breaks preserved, used
	// when the content contains no bullet marker at all.
	KindLines
)

// Block is one rendered unit of a message body.
type Block struct {
	Kind  BlockKind
	Lines []string // paragraph: one line; list: one entry per item
}

// Blocks converts a message body into markup blocks. Content without
// any bullet marker keeps its line breaks as-is. Otherwise each line
// is classified: consecutive bullet lines form one list block, any
// non-bullet non-empty line becomes its own paragraph, and a
// non-bullet line (or end of input) closes an open list.
func Blocks(content string) []Block {
	if !strings.Contains(content, BulletMarker) {
		return []Block{{Kind: KindLines, Lines: strings.Split(content, "\n")}}
	}

	var blocks []Block
	var list []string

	closeList := func() {
		if len(list) > 0 {
			blocks = append(blocks, Block{Kind: KindList, Lines: list})
			list = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, BulletMarker):
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, BulletMarker))
			list = append(list, item)
		case trimmed == "":
			closeList()
		default:
			closeList()
			blocks = append(blocks, Block{Kind: KindParagraph, Lines: []string{trimmed}})
		}
	}
	closeList()
	return blocks
}
