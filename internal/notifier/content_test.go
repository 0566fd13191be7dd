package notifier

import "testing"

func TestSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "short", want: "short..."},
		{in: "exactly twenty chars", want: "exactly twenty chars..."},
		{in: "exactly twenty chars!", want: "exactly twenty chars..."},
		{in: "ünïcödé ünïcödé ünïcödé", want: "ünïcödé ünïcödé ünïc..."},
		{in: "", want: "..."},
	}
	for _, tt := range tests {
		if got := snippet(tt.in, commentSnippetLen); got != tt.want {
			t.Errorf("snippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLikeCommentContent(t *testing.T) {
	t.Parallel()

	got := likeCommentContent("Alice", "Nice")
	if got != `Alice liked your comment: "Nice..."` {
		t.Fatalf("unexpected content %q", got)
	}
}
