package safety

import "testing"

func TestDetect(t *testing.T) {
	t.Run("detects high-risk phrases", func(t *testing.T) {
		positives := []string{
			"I've been thinking about hurting myself lately",
			"sometimes I want to kill myself",
			"I keep thinking about suicide",
			"I just want to die",
			"i've been self-harming again",
			"there's no reason to live anymore",
		}
		for _, text := range positives {
			if !Detect(text) {
				t.Errorf("Detect(%q) = false, want true", text)
			}
		}
	})

	t.Run("ignores casual hyperbole", func(t *testing.T) {
		negatives := []string{
			"this homework is killing me",
			"my phone battery died",
			"I'm dying to see that film",
			"that exam was brutal",
			"",
		}
		for _, text := range negatives {
			if Detect(text) {
				t.Errorf("Detect(%q) = true, want false", text)
			}
		}
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		if !Detect("I WANT TO DIE") {
			t.Error("Detect should match regardless of case")
		}
		if !Detect("Thinking About Suicide") {
			t.Error("Detect should match mixed case")
		}
	})

	t.Run("matches inside longer text", func(t *testing.T) {
		text := "school has been rough and honestly I've thought about ending my life more than once"
		if !Detect(text) {
			t.Error("Detect should match phrases embedded in longer text")
		}
	})
}
