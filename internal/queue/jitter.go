package queue

import (
	"math/rand/v2"
)

// JitterPolicy управляет косметическим продвижением ожидающих клиентов во время тика:
// с вероятностью Probability клиент меняется местами с ожидающим клиентом перед ним.
// Probability <= 0 отключает продвижение.
type JitterPolicy struct {
	Probability float64
	Rand        *rand.Rand
}

// NewJitterPolicy создаёт политику с детерминированным генератором от seed.
func NewJitterPolicy(probability float64, seed uint64) JitterPolicy {
	return JitterPolicy{
		Probability: probability,
		Rand:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (p JitterPolicy) advance() bool {
	if p.Probability <= 0 {
		return false
	}
	if p.Probability >= 1 {
		return true
	}
	if p.Rand == nil {
		return rand.Float64() < p.Probability
	}
	return p.Rand.Float64() < p.Probability
}
