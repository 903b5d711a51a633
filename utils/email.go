package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"hotel-booking-backend/models"
)

// EmailResult reports the outcome of a notification attempt. Email
// failures are response metadata, never booking failures.
type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func smtpConfigured() bool {
	return os.Getenv("SMTP_HOST") != "" && os.Getenv("SMTP_PORT") != "" &&
		os.Getenv("SMTP_USERNAME") != "" && os.Getenv("SMTP_PASSWORD") != ""
}

func sendMail(recipient, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "Hotel Reservations"
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	return smtp.SendMail(addr, auth, smtpUser, []string{recipient}, []byte(sb.String()))
}

// SendBookingReceivedEmail confirms a new booking to the guest.
func SendBookingReceivedEmail(booking *models.Booking, room *models.Room) EmailResult {
	if !smtpConfigured() {
		return EmailResult{Success: false, Message: "smtp not configured; guest email skipped"}
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your reservation. Your booking details:\n\n"+
			"  Booking Reference: %s\n"+
			"  Room: %s %s\n"+
			"  Check-In: %s\n"+
			"  Check-Out: %s\n"+
			"  Nights: %d\n"+
			"  Total: %s\n\n"+
			"We look forward to welcoming you.\n",
		booking.GuestName,
		booking.BookingReference,
		room.RoomNumber, room.Name,
		booking.CheckInDate.Format(DateLayout),
		booking.CheckOutDate.Format(DateLayout),
		booking.Nights,
		booking.TotalAmount.StringFixed(2),
	)

	if err := sendMail(booking.GuestEmail, "Your booking "+booking.BookingReference, body); err != nil {
		return EmailResult{Success: false, Message: err.Error()}
	}
	return EmailResult{Success: true, Message: "guest email sent"}
}

// SendAdminNotificationEmail alerts staff about a new booking.
func SendAdminNotificationEmail(booking *models.Booking, room *models.Room) EmailResult {
	adminEmail := os.Getenv("ADMIN_NOTIFICATION_EMAIL")
	if adminEmail == "" || !smtpConfigured() {
		return EmailResult{Success: false, Message: "admin notification not configured"}
	}

	body := fmt.Sprintf(
		"New booking received.\n\n"+
			"  Reference: %s\n"+
			"  Guest: %s <%s>\n"+
			"  Room: %s\n"+
			"  Dates: %s to %s (%d nights)\n"+
			"  Total: %s\n",
		booking.BookingReference,
		booking.GuestName, booking.GuestEmail,
		room.RoomNumber,
		booking.CheckInDate.Format(DateLayout),
		booking.CheckOutDate.Format(DateLayout),
		booking.Nights,
		booking.TotalAmount.StringFixed(2),
	)

	if err := sendMail(adminEmail, "New booking "+booking.BookingReference, body); err != nil {
		return EmailResult{Success: false, Message: err.Error()}
	}
	return EmailResult{Success: true, Message: "admin email sent"}
}
