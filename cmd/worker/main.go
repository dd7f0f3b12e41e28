package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"portfolio-backend/internal/bootstrap"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/telemetry"
	"portfolio-backend/internal/workerproc"
)

const (
	defaultVisibilitySeconds  = 1200
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
)

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type worker struct {
	app        *bootstrap.App
	sqs        sqsAPI
	queueURL   string
	visibility int32
	sem        chan struct{}
	wg         sync.WaitGroup
}

func main() {
	cfg := config.Load()

	queueURL := strings.TrimSpace(os.Getenv("PB_SQS_QUEUE_URL"))
	if queueURL == "" {
		log.Fatal("PB_SQS_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	concurrency := envInt("PB_WORKER_CONCURRENCY", defaultWorkerConcurrency)
	if concurrency < 1 {
		concurrency = 1
	}
	visibility := envInt("PB_SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
	shutdownTimeout := time.Duration(envInt("PB_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	w := &worker{
		app:        app,
		sqs:        sqs.NewFromConfig(awsCfg),
		queueURL:   queueURL,
		visibility: int32(visibility),
		sem:        make(chan struct{}, concurrency),
	}

	log.Printf("worker started queue=%s concurrency=%d visibility=%ds", queueURL, concurrency, visibility)
	w.poll(ctx)

	log.Printf("shutdown requested, waiting up to %s for in-flight jobs", shutdownTimeout)
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight jobs")
	}
}

// poll long-polls the queue until ctx is cancelled, fanning messages out to
// at most cap(w.sem) concurrent handlers.
func (w *worker) poll(ctx context.Context) {
	for ctx.Err() == nil {
		resp, err := w.sqs.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(w.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   w.visibility,
			AttributeNames:      []sqstypes.QueueAttributeName{sqstypes.QueueAttributeName("ApproximateReceiveCount")},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				return
			case w.sem <- struct{}{}:
			}
			metrics.IncAnalysisJobsReceived()
			w.wg.Add(1)
			go func(m sqstypes.Message) {
				defer w.wg.Done()
				defer func() { <-w.sem }()
				w.handle(ctx, m)
			}(msg)
		}
	}
}

func (w *worker) handle(ctx context.Context, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)

	decoded, meta, err := workerproc.ParseMessage(body)
	if err != nil {
		w.dropUnrecoverable(ctx, msg, meta, err)
		return
	}

	telemetry.Info("worker.analysis.received", w.fields(msg, decoded.PortfolioID, decoded.RequestID))

	if err := workerproc.HandleMessage(ctx, w.app.AnalysisService, body); err != nil {
		portfolioID, requestID := decoded.PortfolioID, decoded.RequestID
		var procErr workerproc.ErrProcess
		if errors.As(err, &procErr) {
			portfolioID, requestID = procErr.PortfolioID, procErr.RequestID
		}
		fields := w.fields(msg, portfolioID, requestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.analysis.failed", fields)
		metrics.IncAnalysisJobsFailed()
		// Leave the message for redelivery after the visibility timeout.
		return
	}

	if w.delete(ctx, msg, decoded.PortfolioID, decoded.RequestID) {
		telemetry.Info("worker.analysis.completed", w.fields(msg, decoded.PortfolioID, decoded.RequestID))
		metrics.IncAnalysisJobsCompleted()
	}
}

// dropUnrecoverable deletes payloads that can never succeed on redelivery:
// empty bodies, undecodable JSON, and messages without a portfolio id.
func (w *worker) dropUnrecoverable(ctx context.Context, msg sqstypes.Message, meta workerproc.MessageMeta, parseErr error) {
	requestID := ""
	event := "worker.analysis.decode_failed"

	var (
		emptyBody workerproc.ErrEmptyBody
		missingID workerproc.ErrMissingPortfolioID
	)
	switch {
	case errors.As(parseErr, &emptyBody):
		event = "worker.analysis.empty_body"
	case errors.As(parseErr, &missingID):
		event = "worker.analysis.missing_portfolio_id"
		requestID = missingID.RequestID
	}

	fields := w.fields(msg, "", requestID)
	fields["body_len"] = meta.BodyLen
	if meta.BodySHA != "" {
		fields["body_sha256"] = meta.BodySHA
	}
	fields["error"] = parseErr.Error()
	telemetry.Error(event, fields)

	if w.delete(ctx, msg, "", requestID) {
		metrics.IncAnalysisJobsDeletedUnrecoverable()
	}
}

func (w *worker) delete(ctx context.Context, msg sqstypes.Message, portfolioID, requestID string) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		fields := w.fields(msg, portfolioID, requestID)
		fields["error"] = "missing receipt handle"
		telemetry.Error("worker.analysis.delete_failed", fields)
		return false
	}
	if _, err := w.sqs.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(w.queueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		fields := w.fields(msg, portfolioID, requestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.analysis.delete_failed", fields)
		return false
	}
	return true
}

func (w *worker) fields(msg sqstypes.Message, portfolioID, requestID string) map[string]any {
	fields := map[string]any{
		"portfolio_id":   portfolioID,
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if strings.TrimSpace(requestID) != "" {
		fields["request_id"] = requestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	raw := msg.Attributes["ApproximateReceiveCount"]
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
