package engine

// summaryInterval is the number of messages between rolling summary updates.
const summaryInterval = 5

// ShouldSummarize reports whether the conversation summary is due after the
// given total message count.
func ShouldSummarize(messageCount int) bool {
	return messageCount > 0 && messageCount%summaryInterval == 0
}
