package cct

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

const otpIssuer = "CCT"

type otpEntry struct {
	secret   string
	issuedAt time.Time
}

// otpStore keeps one outstanding code per email: email -> entry
type otpStore struct {
	entries map[string]otpEntry
	mu      sync.Mutex
}

func newOTPStore() *otpStore {
	return &otpStore{entries: make(map[string]otpEntry)}
}

func (c *CCT) otpOpts() totp.ValidateOpts {
	period := uint(c.Config.OTPExpire / time.Second)
	if period == 0 {
		period = 1
	}
	return totp.ValidateOpts{
		Period:    period,
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueOTP creates a fresh code for email, replacing any earlier one, and
// mails it when a mailer is configured.
func (c *CCT) issueOTP(email string, username string) (string, error) {
	logger := coreLogger(common.LoggerCategoryOTP)

	email = normalizeEmail(email)
	if email == "" {
		return "", validationErrorf("email is required")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      otpIssuer,
		AccountName: email,
		Period:      c.otpOpts().Period,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}

	issuedAt := c.now()
	code, err := totp.GenerateCodeCustom(key.Secret(), issuedAt, c.otpOpts())
	if err != nil {
		return "", err
	}

	c.otpStore.mu.Lock()
	c.otpStore.entries[email] = otpEntry{secret: key.Secret(), issuedAt: issuedAt}
	c.otpStore.mu.Unlock()

	logger.Info("OTP issued", zap.String("email", email), zap.Time("expires_at", issuedAt.Add(c.Config.OTPExpire)))

	if c.OTPMailer != nil {
		if username == "" {
			username = "User"
		}
		if err := c.OTPMailer.SendOTP(email, username, code); err != nil {
			return "", fmt.Errorf("failed to send otp: %w", err)
		}
	}

	return code, nil
}

// verifyOTP consumes the code on success. A wrong code leaves the entry in
// place until it expires.
func (c *CCT) verifyOTP(email string, code string) bool {
	logger := coreLogger(common.LoggerCategoryOTP)

	email = normalizeEmail(email)

	c.otpStore.mu.Lock()
	defer c.otpStore.mu.Unlock()

	entry, exists := c.otpStore.entries[email]
	if !exists {
		logger.Info("No OTP outstanding", zap.String("email", email))
		return false
	}

	if c.now().After(entry.issuedAt.Add(c.Config.OTPExpire)) {
		logger.Info("OTP expired", zap.String("email", email))
		delete(c.otpStore.entries, email)
		return false
	}

	valid, err := totp.ValidateCustom(code, entry.secret, entry.issuedAt, c.otpOpts())
	if err != nil || !valid {
		logger.Info("OTP rejected", zap.String("email", email))
		return false
	}

	delete(c.otpStore.entries, email)
	logger.Info("OTP verified", zap.String("email", email))
	return true
}

type IOTPImpl struct {
	cct *CCT
}

func (io *IOTPImpl) IssueOTP(email string, username string) (string, error) {
	return io.cct.issueOTP(email, username)
}

func (io *IOTPImpl) VerifyOTP(email string, code string) bool {
	return io.cct.verifyOTP(email, code)
}

func (c *CCT) GetIOTP() IOTP {
	return &IOTPImpl{cct: c}
}
