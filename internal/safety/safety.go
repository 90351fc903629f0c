// Package safety implements the pre-send crisis check. Detection runs on
// every user turn before any network call; a hit bypasses the remote model
// entirely and the conversation gets a fixed supportive reply instead.
package safety

import "strings"

// crisisPhrases is the fixed list of high-risk phrases. Matching is
// case-insensitive substring; the phrases are specific enough that casual
// hyperbole ("this homework is killing me") does not trip them.
var crisisPhrases = []string{
	"kill myself",
	"killing myself",
	"suicide",
	"suicidal",
	"end my life",
	"ending my life",
	"want to die",
	"wanna die",
	"hurting myself",
	"hurt myself",
	"harm myself",
	"harming myself",
	"self-harm",
	"self harm",
	"better off dead",
	"no reason to live",
	"don't want to be alive",
}

// CrisisText is the canned safety reply appended in place of a model call.
const CrisisText = "I'm really glad you told me that. What you're feeling " +
	"matters, and you deserve support from someone who can really help.\n\n" +
	"Please reach out to a trusted adult, like a parent or your " +
	"school counsellor. You don't have to carry this alone.\n\n" +
	"If you need someone right now:\n" +
	"- Emergency services: 911 (US) / 999 (UK) / 112 (EU)\n" +
	"- Suicide & Crisis Lifeline: call or text 988 (US)\n" +
	"- Crisis Text Line: text HOME to 741741\n" +
	"- Childline: 0800 1111 (UK)\n\n" +
	"I'm still here if you want to keep talking."

// Detect reports whether the text contains any high-risk phrase.
func Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
