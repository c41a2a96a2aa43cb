package media

import "strings"

const MaxFileSize = 10 * 1024 * 1024 // 10 MiB

const imageMarker = "image/"

func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, imageMarker)
}
