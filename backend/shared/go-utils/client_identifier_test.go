package utils

import (
	"net/http/httptest"
	"testing"
)

func TestGetClientIdentifier(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/submissions", nil)
	r.RemoteAddr = "198.51.100.4:51234"

	id := GetClientIdentifier(r, GetClientPlatform(r))
	if id.Type != ClientIDTypeIP || id.Value != "198.51.100.4" {
		t.Fatalf("expected remote addr IP, got %+v", id)
	}

	r.Header.Set("X-Forwarded-For", "not-an-ip, 203.0.113.7")
	if got := GetClientIdentifier(r, PlatformWeb).Key(); got != "ip:203.0.113.7" {
		t.Fatalf("expected forwarded IP key, got %q", got)
	}

	r.Header.Set("X-Platform", "ios")
	r.Header.Set("X-Device-ID", "device-123")
	id = GetClientIdentifier(r, GetClientPlatform(r))
	if id.Type != ClientIDTypeDeviceID || id.Key() != "device_id:device-123" {
		t.Fatalf("expected device identifier, got %+v", id)
	}
}

func TestGetClientIdentifierMobileWithoutDeviceFallsBackToIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.RemoteAddr = "192.0.2.10:1234"
	r.Header.Set("X-Platform", "android")

	id := GetClientIdentifier(r, GetClientPlatform(r))
	if id.Type != ClientIDTypeIP || id.Value != "192.0.2.10" {
		t.Fatalf("expected IP fallback, got %+v", id)
	}
}

func TestParsePlatform(t *testing.T) {
	for in, want := range map[string]PlatformType{"web": PlatformWeb, " Android ": PlatformAndroid, "IOS": PlatformIOS} {
		got, err := ParsePlatform(in)
		if err != nil || got != want {
			t.Errorf("ParsePlatform(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePlatform("blackberry"); err == nil {
		t.Error("expected an error for an unknown platform")
	}
}
