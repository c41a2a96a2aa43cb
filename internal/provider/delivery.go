package provider

import (
	"strings"
)

// AutoTransform asks the provider to pick format and quality per client.
const AutoTransform = "f_auto,q_auto"

const uploadSegment = "/upload/"

// DeliveryURL inserts the automatic format/quality segment after the
// upload segment of secureURL. When secureURL has no such segment the URL
// is rebuilt from deliveryBase, cloud and publicID.
func DeliveryURL(secureURL, deliveryBase, cloud, publicID string) string {
	if i := strings.Index(secureURL, uploadSegment); i >= 0 {
		head, tail := secureURL[:i+len(uploadSegment)], secureURL[i+len(uploadSegment):]
		if strings.HasPrefix(tail, AutoTransform+"/") {
			return secureURL
		}
		return head + AutoTransform + "/" + tail
	}
	return strings.TrimRight(deliveryBase, "/") + "/" + cloud + "/image/upload/" + AutoTransform + "/" + publicID
}
