package log

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é a interface usada pelos serviços; os campos da requisição
// (correlation_id, route, user_id) entram via WithContext.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type contextKey string

const requestKey contextKey = "request"

// Nomes dos campos preenchidos a partir da requisição
const (
	FieldCorrelationID = "correlation_id"
	FieldRoute         = "route"
	FieldUserID        = "user_id"
)

// campos de transporte que só poluem o console em desenvolvimento
var verboseFields = map[string]bool{
	FieldCorrelationID: true,
	"remote_addr":      true,
	"user_agent":       true,
	"referer":          true,
	"content_type":     true,
	"content_length":   true,
	"query":            true,
	"stack_trace":      true,
}

// Request acompanha uma requisição HTTP. A rota só é conhecida depois do
// roteamento e o usuário depois da autenticação, então os middlewares
// preenchem os campos à medida que a requisição avança.
type Request struct {
	CorrelationID string
	Route         string
	UserID        int
}

type logger struct {
	entry *logrus.Entry
}

// L é a instância global, usada fora do escopo de uma requisição
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// SetupTestLogger configura um logger simplificado para testes
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetReportCaller(false)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if IsDevelopment() && verboseFields[key] {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	selected := logrus.Fields(fields)

	if IsDevelopment() {
		selected = make(logrus.Fields, len(fields))
		for k, v := range fields {
			if !verboseFields[k] {
				selected[k] = v
			}
		}
		if len(selected) == 0 {
			return l
		}
	}

	return &logger{entry: l.entry.WithFields(selected)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

// WithContext anexa os campos conhecidos da requisição em andamento
func (l *logger) WithContext(ctx context.Context) Logger {
	req, ok := RequestFromContext(ctx)
	if !ok {
		return l
	}

	return l.WithFields(req.Fields())
}

func (l *logger) Debug(args ...interface{}) {
	l.entry.Debug(args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logger) Info(args ...interface{}) {
	l.entry.Info(args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Fields devolve só os campos já preenchidos
func (r *Request) Fields() Fields {
	fields := Fields{FieldCorrelationID: r.CorrelationID}
	if r.Route != "" {
		fields[FieldRoute] = r.Route
	}
	if r.UserID != 0 {
		fields[FieldUserID] = r.UserID
	}
	return fields
}

// StartRequest gera o ID de correlação e guarda o Request no contexto
func StartRequest(ctx context.Context) (context.Context, *Request) {
	req := &Request{CorrelationID: uuid.New().String()}
	return context.WithValue(ctx, requestKey, req), req
}

func RequestFromContext(ctx context.Context) (*Request, bool) {
	if ctx == nil {
		return nil, false
	}
	req, ok := ctx.Value(requestKey).(*Request)
	return req, ok && req != nil
}

// SetRoute registra o padrão da rota atendida (/v1/meta-ads/ads/:id/creative)
func SetRoute(ctx context.Context, route string) {
	if req, ok := RequestFromContext(ctx); ok {
		req.Route = route
	}
}

// SetUserID registra o usuário autenticado
func SetUserID(ctx context.Context, userID int) {
	if req, ok := RequestFromContext(ctx); ok {
		req.UserID = userID
	}
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if req, ok := RequestFromContext(ctx); ok {
		return req.CorrelationID
	}
	return ""
}

// ForContext cria um logger com os campos da requisição do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
