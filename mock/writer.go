package mock

import "github.com/fwojciec/webclip"

var _ webclip.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of webclip.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(article *webclip.Article, outputDir string) (string, error)
}

func (w *ArticleWriter) WriteArticle(article *webclip.Article, outputDir string) (string, error) {
	return w.WriteArticleFn(article, outputDir)
}
