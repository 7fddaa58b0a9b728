package logging

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

// requestIDKey é a chave de contexto do identificador da requisição
const requestIDKey contextKey = "request_id"

// ContextWithRequestID associa um identificador de requisição ao contexto
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext recupera o identificador de requisição do contexto
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// ContextLogger estende o zap.Logger com métodos que utilizam contexto
type ContextLogger struct {
	*zap.Logger
}

// With adiciona campos ao logger
func (l *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{Logger: l.Logger.With(fields...)}
}

// InfoCtx registra mensagens no nível info com o identificador da requisição
func (l *ContextLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Info(msg, l.addContextFields(ctx, fields)...)
}

// ErrorCtx registra mensagens no nível error com o identificador da requisição
func (l *ContextLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Error(msg, l.addContextFields(ctx, fields)...)
}

// WarnCtx registra mensagens no nível warn com o identificador da requisição
func (l *ContextLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Warn(msg, l.addContextFields(ctx, fields)...)
}

// DebugCtx registra mensagens no nível debug com o identificador da requisição
func (l *ContextLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Debug(msg, l.addContextFields(ctx, fields)...)
}

func (l *ContextLogger) addContextFields(ctx context.Context, fields []zap.Field) []zap.Field {
	if requestID, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, zap.String("request_id", requestID))
	}
	return fields
}
