package forge

import (
	"fmt"
	"testing"

	"github.com/Vibhor2702/pr-review/internal/review"
)

func TestNew(t *testing.T) {
	for _, provider := range Names() {
		f, err := New(provider, "tok")
		if err != nil {
			t.Errorf("New(%q) error: %v", provider, err)
			continue
		}
		if f.Name() != provider {
			t.Errorf("New(%q).Name() = %q", provider, f.Name())
		}
	}

	if _, err := New("sourcehut", ""); err == nil {
		t.Error("expected error for unsupported provider")
	}

	// Case-insensitive provider names
	f, err := New("GitHub", "tok")
	if err != nil {
		t.Fatalf("New(GitHub) error: %v", err)
	}
	if f.Name() != "github" {
		t.Errorf("Name() = %q", f.Name())
	}
}

func TestPostable_SkipsInfoOnLargeReviews(t *testing.T) {
	var comments []review.Comment
	for i := 0; i < 8; i++ {
		comments = append(comments, review.Comment{File: "a.py", Line: i + 1, Severity: review.SeverityError})
	}
	for i := 0; i < 4; i++ {
		comments = append(comments, review.Comment{File: "b.py", Line: i + 1, Severity: review.SeverityInfo})
	}

	got := postable(comments)
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8 (info dropped above threshold)", len(got))
	}
	for _, c := range got {
		if c.Severity == review.SeverityInfo {
			t.Error("info comment survived filtering on a large review")
		}
	}
}

func TestPostable_KeepsInfoOnSmallReviews(t *testing.T) {
	comments := []review.Comment{
		{File: "a.py", Line: 1, Severity: review.SeverityError},
		{File: "a.py", Line: 2, Severity: review.SeverityInfo},
	}
	if got := postable(comments); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestPostable_CapsInlineComments(t *testing.T) {
	var comments []review.Comment
	for i := 0; i < 30; i++ {
		comments = append(comments, review.Comment{
			File: fmt.Sprintf("f%d.py", i), Line: 1, Severity: review.SeverityError,
		})
	}
	got := postable(comments)
	if len(got) != maxInlineComments {
		t.Fatalf("len = %d, want %d", len(got), maxInlineComments)
	}
	if got[0].File != "f0.py" || got[19].File != "f19.py" {
		t.Error("cap should keep the first comments in original order")
	}
}
