package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared across packages.
const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"

	FieldDocument = "document"
	// FieldKind tells a resume apart from a job description.
	FieldKind  = "document_kind"
	FieldStage = "stage"
)

// Pair is a string key/value used to build zap fields.
type Pair struct {
	Key   string
	Value string
}

// Strings converts pairs into zap string fields. Keys and values are trimmed;
// pairs left empty on either side are skipped.
func Strings(pairs ...Pair) []zap.Field {
	out := make([]zap.Field, 0, len(pairs))
	for _, p := range pairs {
		key, value := strings.TrimSpace(p.Key), strings.TrimSpace(p.Value)
		if key == "" || value == "" {
			continue
		}
		out = append(out, zap.String(key, value))
	}
	return out
}

// With returns logger enriched with fields. A nil logger becomes a no-op one.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithProvider tags log entries with the AI provider and model.
func WithProvider(logger *zap.Logger, provider, model string) *zap.Logger {
	return With(logger, Strings(
		Pair{Key: FieldProvider, Value: provider},
		Pair{Key: FieldModel, Value: model},
	)...)
}

// WithDocument tags log entries with the processed document.
func WithDocument(logger *zap.Logger, name, kind string) *zap.Logger {
	return With(logger, Strings(
		Pair{Key: FieldDocument, Value: name},
		Pair{Key: FieldKind, Value: kind},
	)...)
}
