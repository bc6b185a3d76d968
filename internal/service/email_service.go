package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/cctvmart/internal/config"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderID string
	Name    string
	Status  string
	Notes   string
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject := fmt.Sprintf("Order %s is now %s", input.OrderID, input.Status)
	var buf bytes.Buffer
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "customer"
	}
	fmt.Fprintf(&buf, "Hi %s,\n\n", name)
	fmt.Fprintf(&buf, "Your order %s has been updated to: %s.\n", input.OrderID, input.Status)
	if strings.TrimSpace(input.Notes) != "" {
		fmt.Fprintf(&buf, "\nNote from our team: %s\n", input.Notes)
	}
	buf.WriteString("\nThank you for shopping with CCTV Mart.")
	return s.sendTextEmail(toEmail, subject, buf.String())
}

// RepairStatusEmailInput 维修进度邮件输入
type RepairStatusEmailInput struct {
	SerialNo   string
	Name       string
	DeviceName string
	Progress   string
}

// SendRepairStatusEmail 发送维修进度通知
func (s *EmailService) SendRepairStatusEmail(toEmail string, input RepairStatusEmailInput) error {
	subject := fmt.Sprintf("Repair update for %s", input.DeviceName)
	var buf bytes.Buffer
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "customer"
	}
	fmt.Fprintf(&buf, "Hi %s,\n\n", name)
	fmt.Fprintf(&buf, "Your device %s (serial %s) is now: %s.\n", input.DeviceName, input.SerialNo, input.Progress)
	buf.WriteString("\nYou can check the latest progress anytime with your serial number.\n")
	buf.WriteString("\nCCTV Mart Service Center")
	return s.sendTextEmail(toEmail, subject, buf.String())
}

// PasswordResetEmailInput 找回密码邮件输入
type PasswordResetEmailInput struct {
	Name          string
	Code          string
	ExpireMinutes int
}

// SendPasswordResetEmail 发送找回密码验证码
func (s *EmailService) SendPasswordResetEmail(toEmail string, input PasswordResetEmailInput) error {
	subject := "Your password reset code"
	var buf bytes.Buffer
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "customer"
	}
	expire := input.ExpireMinutes
	if expire <= 0 {
		expire = 10
	}
	fmt.Fprintf(&buf, "Hi %s,\n\n", name)
	fmt.Fprintf(&buf, "Your one-time code for resetting your password is: %s\n", input.Code)
	fmt.Fprintf(&buf, "\nThe code expires in %d minutes. If you did not request a reset, you can ignore this email.\n", expire)
	buf.WriteString("\nCCTV Mart")
	return s.sendTextEmail(toEmail, subject, buf.String())
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
