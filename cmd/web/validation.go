package main

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minMessageLength = 2
	maxMessageLength = 500
)

// validateChatMessage normalizes a player message and returns a problem
// description for invalid input, or "" when the message is acceptable.
func validateChatMessage(message string) (string, string) {
	message = strings.TrimSpace(message)
	length := utf8.RuneCountInString(message)
	switch {
	case length < minMessageLength:
		return "", "message must be at least 2 characters"
	case length > maxMessageLength:
		return "", "message must be at most 500 characters"
	}
	for _, r := range message {
		if unicode.IsLetter(r) {
			return message, ""
		}
	}
	return "", "message must contain at least one letter"
}
