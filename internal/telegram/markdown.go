package telegram

// SplitMessage splits text into chunks of at most maxLen runes. A chunk
// breaks after the last newline in its second half when one exists, so
// paragraphs survive splitting where possible. Split positions are rune
// offsets throughout; Telegram's length limit counts characters, not bytes.
func SplitMessage(text string, maxLen int) []string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return []string{text}
	}

	var parts []string
	for len(runes) > maxLen {
		splitAt := maxLen
		for i := maxLen - 1; i > maxLen/2; i-- {
			if runes[i] == '\n' {
				splitAt = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:splitAt]))
		runes = runes[splitAt:]
	}
	return append(parts, string(runes))
}

// IsValidMarkdownV2 reports whether code fences and inline code spans are
// balanced.
func IsValidMarkdownV2(text string) bool {
	fenceOpen, inlineOpen := markdownState(text)
	return !fenceOpen && !inlineOpen
}

// FixMarkdown closes dangling code fences and inline code spans so Telegram
// accepts the message.
func FixMarkdown(text string) string {
	fenceOpen, inlineOpen := markdownState(text)
	if inlineOpen {
		text += "`"
	}
	if fenceOpen {
		text += "\n```"
	}
	return text
}

// markdownState walks the text once and reports whether a code fence or an
// inline code span is still open at the end. Backticks inside a fence do not
// open inline spans.
func markdownState(text string) (fenceOpen, inlineOpen bool) {
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '`' {
			continue
		}
		if i+2 < len(runes) && runes[i+1] == '`' && runes[i+2] == '`' {
			fenceOpen = !fenceOpen
			i += 2
			continue
		}
		if !fenceOpen {
			inlineOpen = !inlineOpen
		}
	}
	return fenceOpen, inlineOpen
}
