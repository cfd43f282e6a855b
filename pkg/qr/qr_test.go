package qr

import (
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Unix(1735689600, 0)
	text, err := Encode("XC-003", "9b1c6a64-6a1f-4b9e-8f0e-demo", "XC", now)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	p, err := Decode(text, "XC")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.UID != "XC-003" || p.VisitID != "9b1c6a64-6a1f-4b9e-8f0e-demo" {
		t.Errorf("Decode() = %+v, want uid XC-003 and original visit id", p)
	}
	if p.Timestamp != now.Unix() {
		t.Errorf("Decode() timestamp = %d, want %d", p.Timestamp, now.Unix())
	}
}

func TestDecodeFallback(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		uid     string
		wantErr bool
	}{
		{"plain uid in text", "appointment ref XC-017 confirmed", "XC-017", false},
		{"wrong clinic code falls back to pattern", `{"uid":"XC-005","visitId":"v1","clinicCode":"ZZ"}`, "XC-005", false},
		{"garbage", "no identifier here", "", true},
		{"broken json with embedded uid", `{"uid": "XC-101`, "XC-101", false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(tt.text, "XC")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Decode(%q) expected error", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.text, err)
			}
			if p.UID != tt.uid {
				t.Errorf("Decode(%q) uid = %q, want %q", tt.text, p.UID, tt.uid)
			}
			if p.VisitID != "" {
				t.Errorf("fallback decode should leave visit id empty, got %q", p.VisitID)
			}
		})
	}
}
