package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	mailQueueSize    = 64
	mailSendDeadline = 2 * time.Minute
	mailRetryBase    = 2 * time.Second
	mailMaxRetries   = 3
)

type mailJob struct {
	to   string
	link string
}

// Mailer is the fire-and-forget boundary between request handlers and SMTP.
// Sends go through a bounded queue and a single worker with exponential
// backoff, so a slow or dead transport can never block or fail a request.
type Mailer struct {
	emails    EmailService
	alert     AlertNotifier
	queue     chan mailJob
	done      chan struct{}
	retryBase time.Duration
}

func NewMailer(emails EmailService, alert AlertNotifier) *Mailer {
	m := &Mailer{
		emails:    emails,
		alert:     alert,
		queue:     make(chan mailJob, mailQueueSize),
		done:      make(chan struct{}),
		retryBase: mailRetryBase,
	}
	go m.run()
	return m
}

// Enqueue never blocks: with the queue full the message is dropped with a log
// line. The account itself is already persisted, a login attempt re-sends.
func (m *Mailer) Enqueue(to, link string) {
	select {
	case m.queue <- mailJob{to: to, link: link}:
	default:
		log.Printf("[mailer][enqueue] queue full, dropping verification mail to %s", to)
	}
}

// Close drains the queue and stops the worker.
func (m *Mailer) Close() {
	close(m.queue)
	<-m.done
}

func (m *Mailer) run() {
	defer close(m.done)
	for job := range m.queue {
		m.deliver(job)
	}
}

func (m *Mailer) deliver(job mailJob) {
	ctx, cancel := context.WithTimeout(context.Background(), mailSendDeadline)
	defer cancel()

	b := retry.WithMaxRetries(mailMaxRetries, retry.NewExponential(m.retryBase))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := m.emails.SendVerificationEmail(job.to, job.link); err != nil {
			log.Printf("[mailer][send] attempt failed for %s: %v", job.to, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Printf("[mailer][send] giving up on %s: %v", job.to, err)
		if m.alert != nil {
			m.alert.Notify(fmt.Sprintf("verification mail to %s undeliverable: %v", job.to, err))
		}
		return
	}
	log.Printf("[mailer][send] ok: to=%s", job.to)
}
