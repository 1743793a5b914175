package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	mail "github.com/go-mail/mail/v2"

	"github.com/wordingo/backend/apperr"
)

// FixedOTP is issued when no mailer is configured, so development
// logins work without an SMTP account.
const FixedOTP = "123456"

type otpEntry struct {
	Code      string
	ExpiresAt time.Time
	Name      string
	Email     string
}

// OTPStore holds pending one-time codes keyed by phone number. Codes
// live in process memory only; a restart invalidates them.
type OTPStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]otpEntry
	mailer  *Mailer
}

func NewOTPStore(ttl time.Duration, mailer *Mailer) *OTPStore {
	return &OTPStore{
		ttl:     ttl,
		entries: make(map[string]otpEntry),
		mailer:  mailer,
	}
}

// Issue stores a code for the phone number, remembering the signup
// name/email until verification. When a mailer is configured and the
// caller supplied an email, a random code is generated and sent;
// otherwise the fixed development code is used. Returns the code and
// whether it may be echoed in the response (development mode only).
func (s *OTPStore) Issue(phone, name, email string) (code string, echo bool, err error) {
	code = FixedOTP
	echo = true
	if s.mailer != nil && email != "" {
		code, err = randomCode()
		if err != nil {
			return "", false, err
		}
		echo = false
		if err := s.mailer.SendOTP(email, code); err != nil {
			return "", false, err
		}
	}
	s.mu.Lock()
	s.entries[phone] = otpEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
		Name:      name,
		Email:     email,
	}
	s.mu.Unlock()
	return code, echo, nil
}

// Verify consumes the code for the phone number, returning the
// name/email captured at issue time.
func (s *OTPStore) Verify(phone, code string) (name, email string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[phone]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return "", "", apperr.ValidationMsg("OTP expired or invalid")
	}
	if entry.Code != code {
		return "", "", apperr.ValidationMsg("Invalid OTP")
	}
	delete(s.entries, phone)
	return entry.Name, entry.Email, nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Mailer sends OTP codes over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendOTP(to, code string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your Wordingo verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 30 minutes.", code))
	return m.dialer.DialAndSend(msg)
}
