package redirect

import "strings"

type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceDesktop DeviceClass = "desktop"
)

// Viewports at or below this width are treated as mobile even when the
// user agent did not match.
const mobileViewportMax = 768

var mobileUAKeywords = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"windows phone",
	"mobile",
}

// Classify decides the device class from the user agent string and an
// optional viewport width (0 when unknown). Heuristic only; callers that
// have a better signal can pass the class through directly.
func Classify(userAgent string, viewportWidth int) DeviceClass {
	ua := strings.ToLower(userAgent)
	for _, kw := range mobileUAKeywords {
		if strings.Contains(ua, kw) {
			return DeviceMobile
		}
	}
	if viewportWidth > 0 && viewportWidth <= mobileViewportMax {
		return DeviceMobile
	}
	return DeviceDesktop
}
