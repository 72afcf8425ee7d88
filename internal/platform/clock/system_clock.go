package clock

import "time"

// SystemClock lê o relógio do sistema, sempre em UTC para que expiração e ordenação não dependam do fuso do host.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Agora() time.Time {
	return time.Now().UTC()
}
