package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlocksNoBulletKeepsLineBreaks(t *testing.T) {
	got := Blocks("Revenue was $1.2M.\nUp 4% year on year.")
	want := []Block{
		{Kind: KindLines, Lines: []string{"Revenue was $1.2M.", "Up 4% year on year."}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksConsecutiveBulletsFormOneList(t *testing.T) {
	got := Blocks("Key figures:\n• Revenue: $1.2M\n• Expenses: $0.8M\nOverall a good year.")
	want := []Block{
		{Kind: KindParagraph, Lines: []string{"Key figures:"}},
		{Kind: KindList, Lines: []string{"Revenue: $1.2M", "Expenses: $0.8M"}},
		{Kind: KindParagraph, Lines: []string{"Overall a good year."}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksNonBulletLineClosesList(t *testing.T) {
	got := Blocks("• one\nmiddle\n• two\n• three")
	want := []Block{
		{Kind: KindList, Lines: []string{"one"}},
		{Kind: KindParagraph, Lines: []string{"middle"}},
		{Kind: KindList, Lines: []string{"two", "three"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksListClosedAtEndOfInput(t *testing.T) {
	got := Blocks("Summary:\n• last item")
	want := []Block{
		{Kind: KindParagraph, Lines: []string{"Summary:"}},
		{Kind: KindList, Lines: []string{"last item"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksIndentedBulletsAndBlankLines(t *testing.T) {
	got := Blocks("  • indented\n\n• after blank")
	want := []Block{
		{Kind: KindList, Lines: []string{"indented"}},
		{Kind: KindList, Lines: []string{"after blank"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}
