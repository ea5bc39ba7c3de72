package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Training Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00334D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00334D; line-height: 1.6; }
			.footer { padding: 20px; text-align: center; font-size: 12px; color: #999999; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Thank you for learning with us.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendCheckoutEmail confirms a successful checkout
func SendCheckoutEmail(email, userName string, courseCount int, total float64) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your checkout of <b>%d course(s)</b> for a total of <b>%.2f</b> was successful.</p>
		<p>You can complete the payment from your account at any time to activate your registrations.</p>
	`, userName, courseCount, total)

	return SendEmail([]string{email}, "Checkout Confirmation", getEmailTemplate("Checkout Confirmation", body))
}

// SendCertificateEmail notifies a user that their certificate is ready
func SendCertificateEmail(email, userName, courseTitle, certificateID string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! Your certificate for <b>%s</b> has been issued.</p>
		<p>Certificate number: <b>%s</b></p>
		<p>You can view, download, and share it from your account.</p>
	`, userName, courseTitle, certificateID)

	return SendEmail([]string{email}, "Your Certificate is Ready", getEmailTemplate("Certificate Issued", body))
}
