package command

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/yndnr/llmops-go/internal/cli/config"
	"github.com/yndnr/llmops-go/internal/cli/output"
	"github.com/yndnr/llmops-go/internal/client/credential"
	"github.com/yndnr/llmops-go/internal/client/httpclient"
	"github.com/yndnr/llmops-go/internal/client/notify"
	"github.com/yndnr/llmops-go/internal/core/service"
	"github.com/yndnr/llmops-go/internal/infra/buildinfo"
	"github.com/yndnr/llmops-go/internal/infra/tlsroots"
	"github.com/yndnr/llmops-go/internal/telemetry/logger"
	"github.com/yndnr/llmops-go/internal/telemetry/metric"
)

// Runtime holds the collaborators shared by every command of one process.
// In interactive mode a single Runtime serves every line, so credentials
// obtained by login stay available until logout or exit.
type Runtime struct {
	Config *config.CLIConfig
	Logger logger.Logger

	Metrics     *metric.Registry
	Notifier    notify.Notifier
	Credentials *credential.Store
	Accounts    *credential.AccountStore
	Dispatcher  *httpclient.Dispatcher

	Auth    *service.AuthService
	APIKeys *service.APIKeyService
	Apps    *service.AppService

	In     *bufio.Reader
	Stdout io.Writer
	Stderr io.Writer

	// stdin is the unbuffered reader behind In, used for terminal checks.
	stdin io.Reader

	interactive atomic.Bool
}

// IO carries the standard streams of a Runtime.
type IO struct {
	In     io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s IO) withDefaults() IO {
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	return s
}

// NewRuntime wires logger, TLS, metrics, credential stores, dispatcher and
// services from cfg.
func NewRuntime(cfg *config.CLIConfig, streams IO) (*Runtime, error) {
	streams = streams.withDefaults()

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: streams.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)

	var notifier notify.Notifier = &notify.WriterNotifier{Out: streams.Stdout, Err: streams.Stderr}
	if cfg.Log.Level == "debug" || cfg.Log.Level == "info" {
		notifier = notify.Multi{notifier, notify.NewLogNotifier(log)}
	}

	tlsConfig, err := tlsroots.ClientTLSConfig(tlsroots.ClientFiles{
		CAFile:   cfg.API.CAFile,
		CertFile: cfg.API.ClientCert,
		KeyFile:  cfg.API.ClientKey,
	})
	if err != nil {
		return nil, err
	}

	metrics := metric.NewRegistry()
	creds := credential.NewStore()
	accounts := credential.NewAccountStore()

	dispatcher := httpclient.NewDispatcher(cfg.API.BaseURL,
		httpclient.WithTimeout(cfg.API.Timeout),
		httpclient.WithTLSConfig(tlsConfig),
		httpclient.WithCredentials(creds),
		httpclient.WithNotifier(notifier),
		httpclient.WithLogger(log),
		httpclient.WithMetrics(metrics),
		httpclient.WithUserAgent(buildinfo.UserAgent()),
	)

	auth := service.NewAuthService(dispatcher, creds, &service.AuthServiceConfig{
		Accounts: accounts,
		Notifier: notifier,
		Metrics:  metrics,
		Logger:   log,
	})

	in, ok := streams.In.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(streams.In)
	}

	return &Runtime{
		Config:      cfg,
		Logger:      log,
		Metrics:     metrics,
		Notifier:    notifier,
		Credentials: creds,
		Accounts:    accounts,
		Dispatcher:  dispatcher,
		Auth:        auth,
		APIKeys:     service.NewAPIKeyService(dispatcher),
		Apps:        service.NewAppService(dispatcher),
		In:          in,
		Stdout:      streams.Stdout,
		Stderr:      streams.Stderr,
		stdin:       streams.In,
	}, nil
}

// Print renders data on Stdout in the selected format.
func (rt *Runtime) Print(format output.Format, wide bool, data any) error {
	return printTo(rt.Stdout, format, wide, data)
}
