package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail delivers a single HTML email through Sendgrid. No-op when the
// API key is not configured.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Email skipped (no SENDGRID_API_KEY): %s -> %s", subject, toEmail)
		return nil
	}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcomeEmail notifies a user that an account was created for them
func SendWelcomeEmail(name, email, tempPassword string) error {
	subject := "Your " + config.AppConfig.AppName + " account"
	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
		<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
			<h2 style="color: #00004D;">Welcome, %s!</h2>
			<p>An administrator created an account for you on %s.</p>
			<p>Sign in with your email address and the temporary password below, then change it right away.</p>
			<p style="font-size: 18px; letter-spacing: 2px; background: #f0f0f0; padding: 10px; text-align: center;">%s</p>
		</div>
	</body>
	</html>`, name, config.AppConfig.AppName, tempPassword)

	return SendEmail(name, email, subject, body)
}
