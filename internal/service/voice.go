package service

import (
	"context"

	"go.uber.org/zap"
)

// FeedbackSink receives voice and haptic feedback. Both calls are
// fire-and-forget: the trip lifecycle never depends on their outcome.
type FeedbackSink interface {
	Announce(ctx context.Context, text string)
	Vibrate(ctx context.Context, pattern []int)
}

// Spoken guidance, verbatim from the product copy.
const (
	guidanceLoginOK       = "Inicio de sesión exitoso. Bienvenido a Ecoruta"
	guidanceLogout        = "Sesión cerrada. Hasta pronto"
	guidanceSearching     = "Pago confirmado. Procesando solicitud de viaje"
	guidanceDriverFound   = "Conductor encontrado. Está en camino"
	guidanceDriverArrived = "Tu conductor ha llegado. Dirígete al punto de encuentro"
	guidanceCompleted     = "Has llegado a tu destino. Viaje completado. Gracias por usar Travel App"
	guidanceCancelled     = "Viaje cancelado. Volviendo al mapa principal"
	guidanceEmergency     = "Cancelación de emergencia activada. Viaje detenido"
)

// Vibration patterns (milliseconds, off/on pairs).
var (
	vibrateDefault = []int{0, 400}
	vibrateArrived = []int{0, 500}
)

// VoiceService forwards guidance to a FeedbackSink.
type VoiceService struct {
	sink   FeedbackSink
	logger *zap.Logger
}

// NewVoiceService creates a new VoiceService. A nil sink falls back to
// log-only delivery.
func NewVoiceService(sink FeedbackSink, logger *zap.Logger) *VoiceService {
	if sink == nil {
		sink = &logSink{logger: logger}
	}
	return &VoiceService{sink: sink, logger: logger}
}

// Announce speaks a guidance phrase.
func (s *VoiceService) Announce(ctx context.Context, text string) {
	s.sink.Announce(ctx, text)
}

// Vibrate triggers a haptic pattern.
func (s *VoiceService) Vibrate(ctx context.Context, pattern []int) {
	s.sink.Vibrate(ctx, pattern)
}

// logSink logs feedback instead of delivering it; the default when no device
// sink is attached.
type logSink struct {
	logger *zap.Logger
}

func (s *logSink) Announce(ctx context.Context, text string) {
	s.logger.Info("voice guidance", zap.String("text", text))
}

func (s *logSink) Vibrate(ctx context.Context, pattern []int) {
	s.logger.Info("haptic feedback", zap.Ints("pattern", pattern))
}
