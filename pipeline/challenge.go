package pipeline

import (
	"strings"

	"github.com/fwojciec/webclip/goquery"
)

// challengePhrases appear on anti-bot interstitials and JavaScript
// walls served in place of the real page.
var challengePhrases = []string{
	"enable javascript",
	"please enable javascript",
	"captcha",
	"verify you are a human",
	"human verification",
	"just a moment",
	"cloudflare",
	"access denied",
}

// challengeMaxTextLen bounds the visible text of a challenge page.
// Real articles mentioning these phrases are much longer.
const challengeMaxTextLen = 2000

// looksLikeChallenge reports whether the fetched page is an anti-bot
// challenge rather than real content.
func looksLikeChallenge(html string) bool {
	text := strings.ToLower(goquery.VisibleText(html))
	if len(text) == 0 || len(text) > challengeMaxTextLen {
		return false
	}
	for _, phrase := range challengePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
