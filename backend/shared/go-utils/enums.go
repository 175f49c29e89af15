package utils

import (
	"fmt"
	"strings"
)

// PlatformType is the client surface named by the X-Platform header.
type PlatformType string

const (
	PlatformWeb     PlatformType = "web"
	PlatformAndroid PlatformType = "android"
	PlatformIOS     PlatformType = "ios"
)

func (p PlatformType) String() string { return string(p) }

// ParsePlatform accepts the header values case-insensitively.
func ParsePlatform(s string) (PlatformType, error) {
	switch p := PlatformType(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformWeb, PlatformAndroid, PlatformIOS:
		return p, nil
	}
	return "", fmt.Errorf("invalid platform: %q", s)
}

// IsMobile is true for the app builds, which send a stable X-Device-ID.
func IsMobile(platform PlatformType) bool {
	return platform == PlatformAndroid || platform == PlatformIOS
}

// ClientIDType says what a rate-limit key was derived from.
type ClientIDType string

const (
	ClientIDTypeIP       ClientIDType = "ip"
	ClientIDTypeDeviceID ClientIDType = "device_id"
)

func (c ClientIDType) String() string { return string(c) }
