package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIdentifier holds a typed value that can either be an IP address or a device ID.
type ClientIdentifier struct {
	Type  ClientIDType
	Value string
}

// Key renders the identifier as a stable string, e.g. "ip:203.0.113.7".
func (c ClientIdentifier) Key() string {
	return string(c.Type) + ":" + c.Value
}

// GetClientPlatform reads the "X-Platform" header and returns an enum.
// Defaults to "web" if empty or invalid.
func GetClientPlatform(r *http.Request) PlatformType {
	if p, err := ParsePlatform(r.Header.Get("X-Platform")); err == nil {
		return p
	}
	return PlatformWeb
}

// GetClientIdentifier returns the Device-ID for mobile clients that send one,
// otherwise the best-guess client IP.
func GetClientIdentifier(r *http.Request, platform PlatformType) ClientIdentifier {
	if IsMobile(platform) {
		if deviceID := strings.TrimSpace(r.Header.Get("X-Device-ID")); deviceID != "" {
			return ClientIdentifier{Type: ClientIDTypeDeviceID, Value: deviceID}
		}
	}
	return ClientIdentifier{Type: ClientIDTypeIP, Value: detectIP(r)}
}

// detectIP extracts the best IP address from typical proxy headers or RemoteAddr.
func detectIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		for _, ip := range strings.Split(forwardedFor, ",") {
			if cleanIP := strings.TrimSpace(ip); isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); isValidIP(realIP) {
		return realIP
	}

	if forwarded := r.Header.Get("Forwarded"); forwarded != "" {
		for _, part := range strings.Split(forwarded, ";") {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "for=") {
				maybeIP := strings.Trim(strings.TrimPrefix(part, "for="), "\"")
				if isValidIP(maybeIP) {
					return maybeIP
				}
			}
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(ip) {
		return ip
	}
	return ""
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
