package util

import "strings"

// SplitList splits a comma separated list,
// and drops the blank items.
func SplitList(list string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// QuoteJoin double quotes every item and joins them with sep.
func QuoteJoin(items []string, sep string) string {
	if len(items) == 0 {
		return ""
	}
	return `"` + strings.Join(items, `"`+sep+`"`) + `"`
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
