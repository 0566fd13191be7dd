package notifier

import "fmt"

const commentSnippetLen = 20

func followContent(actor string) string {
	return fmt.Sprintf("%s started following you.", actor)
}

func articleContent(actor, title string) string {
	return fmt.Sprintf(`%s published a new article: "%s"`, actor, title)
}

func jobContent(actor, title string) string {
	return fmt.Sprintf(`%s posted a new job: "%s"`, actor, title)
}

func commentContent(actor, articleTitle string) string {
	return fmt.Sprintf(`%s commented on your article: "%s"`, actor, articleTitle)
}

func likeArticleContent(actor, title string) string {
	return fmt.Sprintf(`%s liked your article: "%s"`, actor, title)
}

func likeCommentContent(actor, comment string) string {
	return fmt.Sprintf(`%s liked your comment: "%s"`, actor, snippet(comment, commentSnippetLen))
}

// snippet keeps the first n runes of s followed by an ellipsis.
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
