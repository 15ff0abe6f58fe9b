package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/2beens/nutriflow/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const sentryFlushTimeout = 5 * time.Second

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes pending
// sentry events and should run on shutdown.
func Setup(params LoggerSetupParams) func() {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	flush := func() {}
	if params.SentryEnabled {
		if err := setupSentry(params); err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		} else {
			flush = func() {
				ok := sentry.Flush(sentryFlushTimeout)
				logrus.Debugf("sentry flush ok: %t", ok)
			}
			logrus.Infoln("Sentry set up successfully")
		}
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(logOutput(params.LogFileName, params.LogToStdout))

	return flush
}

func setupSentry(params LoggerSetupParams) error {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		return err
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	return nil
}

func logOutput(fileName string, toStdout bool) io.Writer {
	if fileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	rotatingFile := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    20, // megabytes
		MaxBackups: 10,
		LocalTime:  false, // UTC
		Compress:   true,
	}

	if toStdout {
		logrus.Println("writing logs to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, rotatingFile)
	}
	return rotatingFile
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.TraceLevel
	}
}
