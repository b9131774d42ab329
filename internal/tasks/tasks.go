// Package tasks moves reservation follow-ups off the request path through an asynq queue.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"text/template"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/email"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// TaskType defines the type of a background task.
const (
	TypeReservationNotify = "reservation:notify"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// MaxNotifyRetries bounds redelivery of a follow-up email.
const MaxNotifyRetries = 10

// --- Task Client (Enqueuing tasks) ---

// RedisOpt derives asynq connection options from an existing Redis client.
func RedisOpt(rdb *redis.Client) asynq.RedisClientOpt {
	opts := rdb.Options()
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
}

func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(RedisOpt(rdb))
}

// IAsynqClient is the part of *asynq.Client the notifier needs.
type IAsynqClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier enqueues reservation follow-ups for the background worker.
type Notifier struct {
	client IAsynqClient
}

// NewNotifier creates a Notifier on top of client.
func NewNotifier(client IAsynqClient) *Notifier {
	return &Notifier{client: client}
}

// NewReservationNotifyTask builds the task carrying notice.
func NewReservationNotifyTask(notice models.ReservationNotice) (*asynq.Task, error) {
	payload, err := json.Marshal(notice)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation notice: %w", err)
	}
	return asynq.NewTask(TypeReservationNotify, payload, asynq.MaxRetry(MaxNotifyRetries), asynq.Queue(QueueCritical)), nil
}

// NotifyReservation implements services.ReservationNotifier.
func (n *Notifier) NotifyReservation(ctx context.Context, notice models.ReservationNotice) error {
	task, err := NewReservationNotifyTask(notice)
	if err != nil {
		return err
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue reservation follow-up: %w", err)
	}
	slog.DebugContext(ctx, "Reservation follow-up enqueued", "task_id", info.ID, "listing_id", notice.Receipt.ListingID)
	return nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg         *config.Config
	emailSender email.Sender
}

func NewTaskProcessor(cfg *config.Config, emailSender email.Sender) *TaskProcessor {
	return &TaskProcessor{cfg: cfg, emailSender: emailSender}
}

// SetupServer configures an Asynq server and its handler mux. The caller starts it.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		RedisOpt(rdb),
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				slog.Error("Task failed", append(taskLogAttrs(task), "error", err)...)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationNotify, processor.HandleReservationNotifyTask)
	slog.Info("Registered background task handlers", "types", []string{TypeReservationNotify})
	return srv, mux
}

// taskLogAttrs identifies a task for logging without its payload, which carries contact details.
func taskLogAttrs(task *asynq.Task) []any {
	attrs := []any{"type", task.Type()}
	var notice models.ReservationNotice
	if json.Unmarshal(task.Payload(), &notice) == nil && notice.Receipt.ListingID != 0 {
		attrs = append(attrs, "listing_id", notice.Receipt.ListingID)
	}
	return attrs
}

// --- Task Handlers ---

var reservationBody = template.Must(template.New("reservation").Parse(`A unit has been reserved.

Project:    {{.Receipt.Title}} (#{{.Receipt.ListingID}})
Sold units: {{.Receipt.SoldUnits}}
Available:  {{.Receipt.Available}}{{if .Receipt.Clamped}} (already sold out when requested){{end}}
Reserved:   {{.Receipt.ReservedAt.Format "2006-01-02 15:04:05 MST"}}

Contact
Name:  {{.Contact.Name}}
Email: {{.Contact.Email}}
Phone: {{.Contact.Phone}}
{{- if .Contact.Message}}

Message:
{{.Contact.Message}}
{{- end}}
`))

var headerLineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// ReservationSubject is the subject line of the sales follow-up email.
// Line breaks in the listing title are flattened so it stays a single header.
func ReservationSubject(notice models.ReservationNotice) string {
	return headerLineBreaks.Replace(fmt.Sprintf("New reservation: %s", notice.Receipt.Title))
}

// replyToAddress returns the visitor's address for the Reply-To header,
// or "" when it does not parse as a single RFC 5322 address.
func replyToAddress(raw string) string {
	if raw == "" || strings.ContainsAny(raw, "\r\n") {
		return ""
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || strings.ContainsAny(addr.Address, "\r\n") {
		return ""
	}
	return addr.Address
}

// HandleReservationNotifyTask emails the sales team about a committed reservation.
func (p *TaskProcessor) HandleReservationNotifyTask(ctx context.Context, t *asynq.Task) error {
	var notice models.ReservationNotice
	if err := json.Unmarshal(t.Payload(), &notice); err != nil {
		return fmt.Errorf("failed to unmarshal reservation payload: %v: %w", err, asynq.SkipRetry)
	}
	if notice.Receipt.ListingID == 0 {
		return fmt.Errorf("reservation payload has no listing id: %w", asynq.SkipRetry)
	}

	to := p.cfg.SalesTeamEmail
	if to == "" {
		return fmt.Errorf("no sales team address configured: %w", asynq.SkipRetry)
	}
	fromAddress := p.cfg.SmtpFromAddress
	if fromAddress == "" {
		fromAddress = "noreply@example.com"
		slog.Warn("SmtpFromAddress not configured, using fallback", "from", fromAddress)
	}

	var body strings.Builder
	if err := reservationBody.Execute(&body, notice); err != nil {
		return fmt.Errorf("failed to render reservation email: %v: %w", err, asynq.SkipRetry)
	}
	subject := ReservationSubject(notice)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("From: %s\r\n", fromAddress))
	if replyTo := replyToAddress(notice.Contact.Email); replyTo != "" {
		sb.WriteString(fmt.Sprintf("Reply-To: %s\r\n", replyTo))
	} else {
		slog.Warn("Contact email is not a valid address, omitting Reply-To", "listing_id", notice.Receipt.ListingID)
	}
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(body.String(), "\n", "\r\n"))

	if err := p.emailSender.Send(ctx, []string{to}, subject, []byte(sb.String())); err != nil {
		slog.Warn("Reservation email failed, will retry", "listing_id", notice.Receipt.ListingID, "error", err)
		return err
	}

	slog.Info("Reservation follow-up sent", "listing_id", notice.Receipt.ListingID, "to", to)
	return nil
}
