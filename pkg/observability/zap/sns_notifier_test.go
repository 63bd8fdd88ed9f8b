package zap

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/theory-cloud/reactstarter/pkg/observability"
)

type fakeSNSClient struct {
	last *sns.PublishInput
	err  error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.last = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSNSNotifier_ValidatesInputs(t *testing.T) {
	var n *snsNotifier
	if err := n.Notify(context.Background(), observability.LogEntry{}); err == nil {
		t.Fatal("expected error for nil notifier")
	}

	empty := NewSNSNotifier(&fakeSNSClient{}, "  ", SNSNotifierOptions{})
	if err := empty.Notify(context.Background(), observability.LogEntry{}); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestSNSNotifier_PublishesSanitizedTruncatedPayload(t *testing.T) {
	client := &fakeSNSClient{}
	notifier := NewSNSNotifier(client, "  arn:aws:sns:us-east-1:000000000000:errors  ", SNSNotifierOptions{
		Subject: "line1\r\n" + strings.Repeat("s", 200),
	})

	err := notifier.Notify(context.Background(), observability.LogEntry{
		Level:   "error",
		Message: "boom",
		Fields:  map[string]any{"payload": strings.Repeat("x", 300*1024)},
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if client.last == nil || *client.last.TopicArn != "arn:aws:sns:us-east-1:000000000000:errors" {
		t.Fatalf("expected trimmed topic arn, got %#v", client.last)
	}
	subject := *client.last.Subject
	if strings.ContainsAny(subject, "\r\n") || len(subject) != maxSubjectLen {
		t.Fatalf("expected sanitized, truncated subject, got %q", subject)
	}
	if len(*client.last.Message) != maxMessageLen {
		t.Fatalf("expected message truncated to %d, got %d", maxMessageLen, len(*client.last.Message))
	}
}

func TestSNSNotifier_DefaultSubject(t *testing.T) {
	client := &fakeSNSClient{}
	notifier := NewSNSNotifier(client, "arn:aws:sns:us-east-1:000000000000:errors", SNSNotifierOptions{})
	if err := notifier.Notify(context.Background(), observability.LogEntry{Message: "x"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if *client.last.Subject != defaultNotificationSubject {
		t.Fatalf("expected default subject, got %q", *client.last.Subject)
	}
}

func TestWithEnvironmentErrorNotifications_NoTopicIsNoop(t *testing.T) {
	t.Setenv("ERROR_NOTIFICATIONS_TOPIC_ARN", "")
	t.Setenv("SNS_ERROR_TOPIC_ARN", "")

	opts := &loggerOptions{}
	WithEnvironmentErrorNotifications(context.Background(), DefaultEnvironmentErrorNotifications())(opts)
	if opts.notifier != nil || opts.initErr != nil {
		t.Fatalf("expected no notifier without topic, got %#v", opts)
	}
}

func TestWithEnvironmentErrorNotifications_ConfiguresNotifier(t *testing.T) {
	t.Setenv("ERROR_NOTIFICATIONS_TOPIC_ARN", "")
	t.Setenv("SNS_ERROR_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:errors")
	t.Setenv("ERROR_NOTIFICATIONS_SUBJECT", "configapi")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	opts := &loggerOptions{}
	WithEnvironmentErrorNotifications(context.Background(), DefaultEnvironmentErrorNotifications())(opts)
	if opts.initErr != nil {
		t.Fatalf("unexpected init error: %v", opts.initErr)
	}
	n, ok := opts.notifier.(*snsNotifier)
	if !ok {
		t.Fatalf("expected sns notifier, got %T", opts.notifier)
	}
	if n.topicARN != "arn:aws:sns:us-east-1:000000000000:errors" || n.subject != "configapi" {
		t.Fatalf("unexpected notifier: %#v", n)
	}
}

func TestFirstEnvValue(t *testing.T) {
	t.Setenv("FIRST_A", "  ")
	t.Setenv("FIRST_B", " b ")
	if got := firstEnvValue("", "FIRST_A", "FIRST_B"); got != "b" {
		t.Fatalf("expected first non-blank value, got %q", got)
	}
	if got := firstEnvValue("FIRST_MISSING"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
