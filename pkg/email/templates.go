package email

import "fmt"

// BookingEmailData carries everything the confirmation template needs.
type BookingEmailData struct {
	Name          string
	UID           string
	TokenNumber   int
	EstimatedTime string
	ClinicName    string
	DoctorName    string
	ClinicAddress string
}

// BuildBookingConfirmation renders the confirmation sent right after a
// booking succeeds.
func BuildBookingConfirmation(data BookingEmailData) Message {
	clinic := data.ClinicName
	if clinic == "" {
		clinic = "the clinic"
	}

	subject := fmt.Sprintf("Appointment confirmed — token %s", data.UID)

	textBody := fmt.Sprintf(`Hi %s,

Your appointment at %s is confirmed.

Booking ID: %s
Queue token: %d
Estimated wait: %s

Show the QR code from the confirmation page at the front desk when you arrive.

%s
%s`,
		data.Name, clinic, data.UID, data.TokenNumber, data.EstimatedTime, data.DoctorName, data.ClinicAddress)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #2563eb;">Hi %s,</h2>
	<p>Your appointment at <strong>%s</strong> is confirmed.</p>
	<table style="border-collapse: collapse; margin: 20px 0;">
		<tr><td style="padding: 4px 12px 4px 0;">Booking ID</td><td><strong>%s</strong></td></tr>
		<tr><td style="padding: 4px 12px 4px 0;">Queue token</td><td><strong>%d</strong></td></tr>
		<tr><td style="padding: 4px 12px 4px 0;">Estimated wait</td><td>%s</td></tr>
	</table>
	<p>Show the QR code from the confirmation page at the front desk when you arrive.</p>
	<p style="color: #6b7280;">%s<br>%s</p>
</body>
</html>`,
		data.Name, clinic, data.UID, data.TokenNumber, data.EstimatedTime, data.DoctorName, data.ClinicAddress)

	return Message{
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
