// Package qr encodes and decodes the small JSON envelope embedded in
// booking QR codes. Rendering the image is a client concern; this
// package only deals with the payload text.
package qr

import (
	"encoding/json"
	"errors"
	"regexp"
	"time"
)

var ErrNoUID = errors.New("no booking uid in scanned text")

// uidPattern matches a human-facing booking identifier such as XC-042.
var uidPattern = regexp.MustCompile(`[A-Z]{2,4}-\d{3}`)

type Payload struct {
	UID        string `json:"uid"`
	VisitID    string `json:"visitId"`
	ClinicCode string `json:"clinicCode"`
	Timestamp  int64  `json:"timestamp"`
}

// Encode produces the QR payload text for a booking confirmation.
func Encode(uid, visitID, clinicCode string, now time.Time) (string, error) {
	data, err := json.Marshal(Payload{
		UID:        uid,
		VisitID:    visitID,
		ClinicCode: clinicCode,
		Timestamp:  now.Unix(),
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses scanned text back into a payload. When the text is not
// our JSON envelope, or the clinic code does not match, it falls back
// to extracting a bare uid pattern, returning it with an empty visit
// id so the caller can still resolve the booking.
func Decode(text, clinicCode string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(text), &p); err == nil && p.UID != "" {
		if clinicCode == "" || p.ClinicCode == clinicCode {
			return p, nil
		}
	}

	if uid := uidPattern.FindString(text); uid != "" {
		return Payload{UID: uid}, nil
	}
	return Payload{}, ErrNoUID
}
