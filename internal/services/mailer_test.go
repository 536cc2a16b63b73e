package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type flakyEmailService struct {
	mu       sync.Mutex
	failures int
	attempts int
}

func (f *flakyEmailService) SendVerificationEmail(email, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (f *flakyEmailService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

type recordingAlert struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingAlert) Notify(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

func (r *recordingAlert) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts)
}

func newTestMailer(emails EmailService, alert AlertNotifier) *Mailer {
	m := &Mailer{
		emails:    emails,
		alert:     alert,
		queue:     make(chan mailJob, mailQueueSize),
		done:      make(chan struct{}),
		retryBase: time.Millisecond,
	}
	go m.run()
	return m
}

func TestMailer_RetriesUntilDelivered(t *testing.T) {
	t.Parallel()

	emails := &flakyEmailService{failures: 2}
	alert := &recordingAlert{}
	m := newTestMailer(emails, alert)

	m.Enqueue("alice@x.com", "http://x/verify/t")
	m.Close()

	require.Equal(t, 3, emails.count())
	require.Equal(t, 0, alert.count())
}

func TestMailer_AlertsOnPermanentFailure(t *testing.T) {
	t.Parallel()

	// more failures than the worker will ever attempt
	emails := &flakyEmailService{failures: 100}
	alert := &recordingAlert{}
	m := newTestMailer(emails, alert)

	m.Enqueue("alice@x.com", "http://x/verify/t")
	m.Close()

	require.Equal(t, 1+mailMaxRetries, emails.count())
	require.Equal(t, 1, alert.count())
	require.Contains(t, alert.texts[0], "alice@x.com")
}

func TestMailer_EnqueueNeverBlocksWhenFull(t *testing.T) {
	t.Parallel()

	// no worker draining this queue
	m := &Mailer{
		emails: &flakyEmailService{},
		queue:  make(chan mailJob, 1),
		done:   make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Enqueue("a@x.com", "l")
		m.Enqueue("b@x.com", "l") // dropped, not blocked
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
