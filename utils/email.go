package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func smtpConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email over SMTP
func SendEmail(to, subject, body string) error {
	config := smtpConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendOTP sends a one-time login code via email
func SendOTP(to, otp string) error {
	body := fmt.Sprintf(`
		<h2>Your %s Login Code</h2>
		<p>Use the following code to sign in:</p>
		<h1 style="color: #4CAF50; font-size: 32px; letter-spacing: 5px;">%s</h1>
		<p>This code will expire in 10 minutes.</p>
		<p>If you didn't request this code, please ignore this email.</p>
	`, AppName, otp)

	return SendEmail(to, fmt.Sprintf("Your %s Login Code", AppName), body)
}
