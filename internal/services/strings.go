package services

import "strings"

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
