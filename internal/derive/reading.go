package derive

// ReadingTime estimates minutes to read text at WordsPerMinute, rounded up.
// The result is never below 1.
func ReadingTime(text string) int {
	words := WordCount(text)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
