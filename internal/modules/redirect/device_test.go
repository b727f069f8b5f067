package redirect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_UserAgent(t *testing.T) {
	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
	android := "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36"
	desktop := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/126.0"

	assert.Equal(t, DeviceMobile, Classify(iphone, 0))
	assert.Equal(t, DeviceMobile, Classify(android, 0))
	assert.Equal(t, DeviceDesktop, Classify(desktop, 0))
}

func TestClassify_ViewportFallback(t *testing.T) {
	desktop := "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/126.0"

	assert.Equal(t, DeviceMobile, Classify(desktop, 390))
	assert.Equal(t, DeviceMobile, Classify(desktop, 768))
	assert.Equal(t, DeviceDesktop, Classify(desktop, 769))
	// unknown viewport stays desktop
	assert.Equal(t, DeviceDesktop, Classify(desktop, 0))
}

func TestClassify_EmptyUserAgent(t *testing.T) {
	assert.Equal(t, DeviceDesktop, Classify("", 0))
	assert.Equal(t, DeviceMobile, Classify("", 400))
}
