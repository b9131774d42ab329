package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockEmailTTL is how long a captured email stays readable in Redis.
const MockEmailTTL = 5 * time.Minute

// RedisSender implements the Sender interface by storing emails in Redis,
// so tests and staging environments can read them back.
type RedisSender struct {
	client      *redis.Client
	fromAddress string
}

// NewRedisSender creates a new RedisSender.
func NewRedisSender(client *redis.Client, fromAddress string) Sender {
	return &RedisSender{client: client, fromAddress: fromAddress}
}

// CapturedEmail is the JSON document stored per captured email.
type CapturedEmail struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SentAt  string `json:"sent_at"`
}

// MockEmailKey returns the Redis key under which the latest email to recipient about subject is kept.
func MockEmailKey(recipient, subject string) string {
	return fmt.Sprintf("mockemail:%s:%s", recipient, subjectSlug(subject))
}

// subjectSlug lowercases subject and keeps letters, digits and single dashes.
func subjectSlug(subject string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(subject) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
		} else if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// Send stores a representation of the email in Redis instead of sending it via SMTP.
func (s *RedisSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	primaryTo := ""
	if len(to) > 0 {
		primaryTo = to[0]
	}

	jsonData, err := json.Marshal(CapturedEmail{
		To:      strings.Join(to, ", "),
		From:    s.fromAddress,
		Subject: subject,
		Body:    string(rawMessage),
		SentAt:  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email data: %w", err)
	}

	key := MockEmailKey(primaryTo, subject)
	if err := s.client.Set(ctx, key, jsonData, MockEmailTTL).Err(); err != nil {
		return fmt.Errorf("failed to store email in Redis key '%s': %w", key, err)
	}

	slog.InfoContext(ctx, "Mock email stored in Redis", "key", key, "ttl", MockEmailTTL, "subject", subject)
	return nil
}
