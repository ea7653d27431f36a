// Package banner renders the startup banner.
package banner

import "fmt"

const art = `
  _           _ _
 (_)_ __ ___ | | |__  _____      __
 | | '_ ` + "`" + ` _ \/ _` + "`" + ` | '_ \/ _ \ \ /\ / /
 | | | | | | | (_| | |_) | (_) \ V  V /
 |_|_| |_| |_|\__,_|_.__/ \___/ \_/\_/
`

// Banner returns the banner with the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  IMDB bag-of-words preprocessor %s\n\n", art, version)
}
