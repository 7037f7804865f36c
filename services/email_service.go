// File: /services/email_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"gopkg.in/gomail.v2"

	"gatherly-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
	codes  CodeStore
}

func NewEmailService(cfg *config.Config, codes CodeStore) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
		codes:  codes,
	}
}

// Generate a random 6-digit verification code
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 6)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

// issueCode reuses a still-valid unused code or mints a new one with a
// 10 minute expiry.
func (es *EmailService) issueCode(email string) string {
	if existing, exists := es.codes.Get(email); exists && !existing.Used && time.Now().Before(existing.ExpiresAt) {
		return existing.Code
	}

	code := es.generateVerificationCode()
	es.codes.Put(email, VerificationCode{
		Code:      code,
		Email:     email,
		ExpiresAt: time.Now().Add(10 * time.Minute),
		Used:      false,
	})
	return code
}

// Send verification email
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	code := es.issueCode(email)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Gatherly - Email Verification")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Email Verification</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #5b21b6; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .code { background: #e9ecef; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0; }
        .code-number { font-size: 32px; font-weight: bold; color: #5b21b6; letter-spacing: 8px; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Gatherly</h1>
            <p>Email Verification</p>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Welcome to Gatherly! Please verify your email address to complete your registration.</p>

            <div class="code">
                <p><strong>Your verification code is:</strong></p>
                <div class="code-number">%s</div>
                <p><small>This code will expire in 10 minutes.</small></p>
            </div>

            <p>If you didn't create an account with Gatherly, please ignore this email.</p>

            <p><strong>The Gatherly Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, name, code)

	textBody := fmt.Sprintf(`
Hello %s!

Welcome to Gatherly! Please verify your email address to complete your registration.

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't create an account with Gatherly, please ignore this email.

The Gatherly Team
    `, name, code)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return code, nil
}

// Verify the code
func (es *EmailService) VerifyCode(email, inputCode string) bool {
	storedCode, exists := es.codes.Get(email)
	if !exists {
		return false
	}

	if storedCode.Used {
		return false
	}

	if time.Now().After(storedCode.ExpiresAt) {
		es.codes.Delete(email)
		return false
	}

	if storedCode.Code != inputCode {
		return false
	}

	es.codes.MarkUsed(email)
	return true
}

// Send welcome email after successful verification
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Gatherly!")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to Gatherly</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #5b21b6; color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .feature { background: white; padding: 20px; margin: 15px 0; border-radius: 8px; border-left: 4px solid #5b21b6; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to Gatherly!</h1>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Your email has been verified and your Gatherly account is now active.</p>

            <div class="feature">
                <h4>Organize Events</h4>
                <p>Create public or private events and manage who joins.</p>
            </div>

            <div class="feature">
                <h4>Invite and RSVP</h4>
                <p>Invite participants to activities and collect their responses.</p>
            </div>

            <div class="feature">
                <h4>Discuss and Chat</h4>
                <p>Post in event discussions and chat with participants in real time.</p>
            </div>

            <p><strong>The Gatherly Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, name)

	textBody := fmt.Sprintf(`
Hello %s!

Your email has been verified and your Gatherly account is now active.

Organize events, invite participants, collect RSVPs, and chat with your
event's participants in real time.

The Gatherly Team
    `, name)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

// SendPasswordResetEmail sends a password reset verification code
func (es *EmailService) SendPasswordResetEmail(email, name string) (string, error) {
	code := es.issueCode(email)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password Reset - Gatherly")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #5b21b6; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .code-box { background: white; border: 2px dashed #5b21b6; padding: 20px; text-align: center; margin: 20px 0; border-radius: 8px; }
        .code { font-size: 32px; font-weight: bold; color: #5b21b6; letter-spacing: 8px; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; }
        .footer { text-align: center; color: #666; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset Request</h1>
        </div>
        <div class="content">
            <p>Hi %s,</p>
            <p>We received a request to reset your password for your Gatherly account.</p>

            <div class="code-box">
                <p style="margin: 0; color: #666;">Your verification code is:</p>
                <div class="code">%s</div>
                <p style="margin: 10px 0 0 0; color: #666; font-size: 14px;">This code will expire in 10 minutes</p>
            </div>

            <div class="warning">
                If you didn't request a password reset, please ignore this email. Your password will remain unchanged.
            </div>
        </div>
        <div class="footer">
            <p>This is an automated message, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`, name, code)

	textBody := fmt.Sprintf(`
Hi %s!

We received a request to reset your password for your Gatherly account.

Your verification code is: %s

This code will expire in 10 minutes.

If you didn't request a password reset, please ignore this email.

The Gatherly Team
    `, name, code)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send password reset email: %w", err)
	}

	return code, nil
}

// SendPasswordChangedEmail sends a confirmation after password is changed
func (es *EmailService) SendPasswordChangedEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password Changed Successfully - Gatherly")

	textBody := fmt.Sprintf(`
Hi %s!

Your password has been changed successfully. You can now log in to your
Gatherly account using your new password.

If you didn't change your password, please contact support immediately.

The Gatherly Team
    `, name)

	m.SetBody("text/plain", textBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password changed email: %w", err)
	}

	return nil
}
