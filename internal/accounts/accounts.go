package accounts

import "strings"

// Separator delimits account ids in the configured account list.
const Separator = "|"

// Parse splits raw on Separator and trims surrounding whitespace from each
// account id. Order is preserved and ids that are blank after trimming are
// dropped, so an empty list yields no accounts.
func Parse(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, Separator) {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
